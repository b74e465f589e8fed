package grpc

import (
	"context"
	"encoding/json"

	"github.com/St1cky1/taskmanager/internal/entity"
	"github.com/St1cky1/taskmanager/internal/infrastructure/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	completionServiceName = "taskmanager.v1.CompletionService"

	completeTaskMethod    = "/" + completionServiceName + "/CompleteTask"
	uncompleteTaskMethod  = "/" + completionServiceName + "/UncompleteTask"
	getTaskProgressMethod = "/" + completionServiceName + "/GetTaskProgress"
)

// CompletionServiceServer - завершение задач по gRPC. Сообщения - well-known
// типы protobuf, поэтому сгенерированный код не нужен.
type CompletionServiceServer interface {
	CompleteTask(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	UncompleteTask(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error)
	GetTaskProgress(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error)
}

type CompletionUsecase interface {
	GetTask(ctx context.Context, userID, taskID int) (*entity.TaskDetail, error)
	CompleteTask(ctx context.Context, userID, taskID int, notes string) (*entity.TaskDetail, error)
	UncompleteTask(ctx context.Context, userID, taskID int) (*entity.TaskDetail, error)
}

// CompletionServer реализует CompletionServiceServer поверх TaskService
type CompletionServer struct {
	taskService CompletionUsecase
}

var _ CompletionServiceServer = (*CompletionServer)(nil)

func NewCompletionServer(taskService CompletionUsecase) *CompletionServer {
	return &CompletionServer{taskService: taskService}
}

// CompleteTask - запрос {"task_id": 1, "notes": "..."}
func (s *CompletionServer) CompleteTask(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	fields := req.GetFields()
	taskID := int(fields["task_id"].GetNumberValue())
	if taskID <= 0 {
		return nil, status.Error(codes.InvalidArgument, "task_id is required")
	}

	task, err := s.taskService.CompleteTask(ctx, userID, taskID, fields["notes"].GetStringValue())
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(task)
}

func (s *CompletionServer) UncompleteTask(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.GetValue() <= 0 {
		return nil, status.Error(codes.InvalidArgument, "task id is required")
	}

	task, err := s.taskService.UncompleteTask(ctx, userID, int(req.GetValue()))
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(task)
}

// GetTaskProgress - только производные поля задачи
func (s *CompletionServer) GetTaskProgress(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.GetValue() <= 0 {
		return nil, status.Error(codes.InvalidArgument, "task id is required")
	}

	task, err := s.taskService.GetTask(ctx, userID, int(req.GetValue()))
	if err != nil {
		return nil, toStatus(err)
	}

	progress := map[string]any{
		"task_id":                        float64(task.ID),
		"completed":                      task.Completed,
		"can_be_completed":               task.CanBeCompleted,
		"subtasks_count":                 float64(task.SubtasksCount),
		"completed_subtasks_count":       float64(task.CompletedSubtasksCount),
		"subtasks_completion_percentage": task.SubtasksCompletionPercentage,
		"is_overdue":                     task.IsOverdue,
		"days_until_due":                 nil,
	}
	if task.DaysUntilDue != nil {
		progress["days_until_due"] = float64(*task.DaysUntilDue)
	}

	out, err := structpb.NewStruct(progress)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func requireUser(ctx context.Context) (int, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return 0, status.Error(codes.Unauthenticated, "authentication required")
	}
	return userID, nil
}

// toStruct - JSON-представление значения в виде structpb.Struct
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func RegisterCompletionServiceServer(s grpc.ServiceRegistrar, srv CompletionServiceServer) {
	s.RegisterService(&completionServiceDesc, srv)
}

var completionServiceDesc = grpc.ServiceDesc{
	ServiceName: completionServiceName,
	HandlerType: (*CompletionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CompleteTask", Handler: completeTaskHandler},
		{MethodName: "UncompleteTask", Handler: uncompleteTaskHandler},
		{MethodName: "GetTaskProgress", Handler: getTaskProgressHandler},
	},
	Streams: []grpc.StreamDesc{},
}

func completeTaskHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CompletionServiceServer).CompleteTask(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: completeTaskMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CompletionServiceServer).CompleteTask(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func uncompleteTaskHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CompletionServiceServer).UncompleteTask(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: uncompleteTaskMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CompletionServiceServer).UncompleteTask(ctx, req.(*wrapperspb.Int64Value))
	}
	return interceptor(ctx, in, info, handler)
}

func getTaskProgressHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CompletionServiceServer).GetTaskProgress(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getTaskProgressMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CompletionServiceServer).GetTaskProgress(ctx, req.(*wrapperspb.Int64Value))
	}
	return interceptor(ctx, in, info, handler)
}

// CompletionClient - клиент CompletionService
type CompletionClient struct {
	cc grpc.ClientConnInterface
}

func NewCompletionClient(cc grpc.ClientConnInterface) *CompletionClient {
	return &CompletionClient{cc: cc}
}

func (c *CompletionClient) CompleteTask(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, completeTaskMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CompletionClient) UncompleteTask(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, uncompleteTaskMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CompletionClient) GetTaskProgress(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, getTaskProgressMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
