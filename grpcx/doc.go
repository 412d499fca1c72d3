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

// Package grpcx projects squid structured errors onto gRPC.
//
// On the server, UnaryServerInterceptor and StreamServerInterceptor turn
// handler errors into gRPC statuses: the status code comes from an
// apis.Mapper and the serialized record travels as a google.protobuf.Struct
// detail. On the client, FromStatus (or UnaryClientInterceptor) rebuilds the
// structured error from that detail.
package grpcx
