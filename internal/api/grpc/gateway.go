package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// NewGatewayHandler создает HTTP Gateway для gRPC. Вызывающий закрывает
// соединение через возвращённую функцию.
func NewGatewayHandler(grpcAddr string) (http.Handler, func() error, error) {
	conn, err := grpc.NewClient(grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to dial gRPC server: %w", err)
	}

	mux, err := NewGatewayMux(conn)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	return mux, conn.Close, nil
}

// NewGatewayMux регистрирует REST-маршруты CompletionService:
//
//	POST /v1/tasks/{id}/complete
//	POST /v1/tasks/{id}/uncomplete
//	GET  /v1/tasks/{id}/progress
func NewGatewayMux(conn grpc.ClientConnInterface) (*runtime.ServeMux, error) {
	mux := runtime.NewServeMux(
		runtime.WithMarshalerOption(runtime.MIMEWildcard, &runtime.JSONPb{
			MarshalOptions:   protojson.MarshalOptions{UseProtoNames: true, EmitUnpopulated: true},
			UnmarshalOptions: protojson.UnmarshalOptions{DiscardUnknown: true},
		}),
	)
	client := NewCompletionClient(conn)

	routes := []struct {
		method  string
		pattern string
		rpc     string
		call    func(ctx context.Context, r *http.Request, taskID int64) (proto.Message, error)
	}{
		{
			method:  http.MethodPost,
			pattern: "/v1/tasks/{id}/complete",
			rpc:     completeTaskMethod,
			call: func(ctx context.Context, r *http.Request, taskID int64) (proto.Message, error) {
				var body struct {
					Notes string `json:"notes"`
				}
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
					return nil, status.Error(codes.InvalidArgument, "invalid JSON body")
				}
				req, err := structpb.NewStruct(map[string]any{"task_id": float64(taskID), "notes": body.Notes})
				if err != nil {
					return nil, status.Error(codes.InvalidArgument, err.Error())
				}
				return client.CompleteTask(ctx, req)
			},
		},
		{
			method:  http.MethodPost,
			pattern: "/v1/tasks/{id}/uncomplete",
			rpc:     uncompleteTaskMethod,
			call: func(ctx context.Context, r *http.Request, taskID int64) (proto.Message, error) {
				return client.UncompleteTask(ctx, wrapperspb.Int64(taskID))
			},
		},
		{
			method:  http.MethodGet,
			pattern: "/v1/tasks/{id}/progress",
			rpc:     getTaskProgressMethod,
			call: func(ctx context.Context, r *http.Request, taskID int64) (proto.Message, error) {
				return client.GetTaskProgress(ctx, wrapperspb.Int64(taskID))
			},
		},
	}

	for _, route := range routes {
		err := mux.HandlePath(route.method, route.pattern, func(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
			_, outbound := runtime.MarshalerForRequest(mux, r)

			ctx, err := runtime.AnnotateContext(r.Context(), mux, r, route.rpc, runtime.WithHTTPPathPattern(route.pattern))
			if err != nil {
				runtime.HTTPError(r.Context(), mux, outbound, w, r, err)
				return
			}

			taskID, err := strconv.ParseInt(pathParams["id"], 10, 64)
			if err != nil {
				runtime.HTTPError(ctx, mux, outbound, w, r, status.Error(codes.InvalidArgument, "invalid task id"))
				return
			}

			resp, err := route.call(ctx, r, taskID)
			if err != nil {
				runtime.HTTPError(ctx, mux, outbound, w, r, err)
				return
			}
			runtime.ForwardResponseMessage(ctx, mux, outbound, w, r, resp)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to register gateway route %s: %w", route.pattern, err)
		}
	}

	return mux, nil
}
