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

package grpcx

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"dirpx.dev/squid"
	"dirpx.dev/squid/apis"
	"dirpx.dev/squid/code"
	"dirpx.dev/squid/wire"
)

// UnaryServerInterceptor returns a gRPC UnaryServerInterceptor that maps
// handler errors into gRPC errors carrying the squid record as a detail.
//
// Errors that already carry a gRPC status and are not structured pass
// through untouched. Every other error is converted to a structured error
// first. Errors not flagged SkipLog are logged at error level; a nil logger
// means slog.Default().
func UnaryServerInterceptor(m apis.Mapper, logger *slog.Logger) grpc.UnaryServerInterceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		return nil, project(ctx, m, logger, info.FullMethod, err)
	}
}

// StreamServerInterceptor is the streaming counterpart of
// UnaryServerInterceptor.
func StreamServerInterceptor(m apis.Mapper, logger *slog.Logger) grpc.StreamServerInterceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		err := handler(srv, ss)
		if err == nil {
			return nil
		}
		return project(ss.Context(), m, logger, info.FullMethod, err)
	}
}

// UnaryClientInterceptor rebuilds structured errors from the statuses
// returned by a squid-aware server. Statuses without a record are returned
// unchanged.
func UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		err := invoker(ctx, method, req, reply, cc, opts...)
		if err == nil {
			return nil
		}
		if _, ok := ExtractRecord(err); !ok {
			return err
		}
		return FromStatus(err)
	}
}

func project(ctx context.Context, m apis.Mapper, logger *slog.Logger, method string, err error) error {
	se, ok := squid.AsStructured(err)
	if !ok {
		if _, isStatus := status.FromError(err); isStatus {
			return err
		}
		se = convert(err)
	}

	st := ToStatus(m, se)
	if !skipLog(err) {
		logger.ErrorContext(ctx, "grpc call failed",
			slog.String("method", method),
			slog.String("grpc_code", st.Code().String()),
			slog.Any("error", se),
		)
	}
	return st.Err()
}

// convert absorbs a plain error, giving context errors their canonical
// code. Captured stacks start at the interceptor, above project and convert.
func convert(err error) squid.Structured {
	var c code.Code
	switch {
	case errors.Is(err, context.Canceled):
		c = code.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		c = code.Timeout
	}
	return squid.Create(squid.Settings{Code: string(c)}, err, squid.WithCallerSkip(2))
}

// skipLog reports whether the first logging hint in err's chain asks for
// silence.
func skipLog(err error) bool {
	var ls apis.LogSkipper
	return errors.As(err, &ls) && ls.SkipLog()
}

// ToStatus builds the gRPC status for se. The status message is se's bare
// message; the record is attached as a Struct detail when it can be encoded.
func ToStatus(m apis.Mapper, se squid.Structured) *status.Status {
	base := status.New(m.GRPCStatus(code.Code(se.Code())), se.Message())

	detail, err := wire.Pack(se)
	if err != nil {
		return base
	}
	p := base.Proto()
	p.Details = append(p.Details, detail)
	return status.FromProto(p)
}

// ExtractRecord pulls the squid record out of a gRPC error, if present.
// Useful in tests and client code.
func ExtractRecord(err error) (squid.HTTPRecord, bool) {
	if err == nil {
		return squid.HTTPRecord{}, false
	}
	st, ok := status.FromError(err)
	if !ok {
		return squid.HTTPRecord{}, false
	}
	for _, d := range st.Proto().GetDetails() {
		if rec, err := wire.Unpack(d); err == nil {
			return rec, true
		}
	}
	return squid.HTTPRecord{}, false
}

// FromStatus turns a gRPC error back into a structured error.
//
// When the status carries a squid record the error is rebuilt from it (see
// wire.Rebuild). Otherwise the status message becomes the message and err
// itself the native error. nil yields nil.
func FromStatus(err error) squid.Structured {
	if err == nil {
		return nil
	}
	if rec, ok := ExtractRecord(err); ok {
		return wire.Rebuild(rec)
	}
	msg := err.Error()
	if st, ok := status.FromError(err); ok {
		msg = st.Message()
	}
	return squid.New(squid.Settings{Message: msg}, err, squid.WithCallerSkip(1))
}
