/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

// HTTPStatusCoder is implemented by errors that pin their own HTTP status.
// Transport adapters prefer it over the Mapper.
//
// squid.HTTPError implements it.
type HTTPStatusCoder interface {
	error

	// HTTPStatusCode returns the status to answer with. Zero means "not
	// pinned" and lets the Mapper decide.
	HTTPStatusCode() int
}

// LogSkipper is implemented by errors that carry a logging hint.
//
// Adapters that log the errors passing through them must not log an error
// whose SkipLog reports true. The hint is advisory: it never changes the
// response written to the client.
type LogSkipper interface {
	error

	SkipLog() bool
}
