// Package grpcserver exposes the orchestrator's chat entry point as a gRPC
// service. Like runtime/toolclient on the client side, the wire contract is
// specified field by field rather than generated from a checked-in .proto:
// a plain JSON codec carries ordinary Go request/response structs over a
// hand-registered grpc.ServiceDesc.
package grpcserver

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/adamsih300u/orchestrator/runtime/interrupt"
	"github.com/adamsih300u/orchestrator/runtime/model"
	"github.com/adamsih300u/orchestrator/runtime/orchestrator"
	"github.com/adamsih300u/orchestrator/runtime/telemetry"
)

const serviceName = "orchestrator.v1.OrchestratorService"

// Server adapts orchestrator.Service onto a gRPC unary RPC.
type Server struct {
	svc     *orchestrator.Service
	logger  telemetry.Logger
	metrics telemetry.Metrics
	// fanout, when non-nil, broadcasts a pause notification to every
	// replica when a turn halts at an interrupt-before node, so whichever
	// replica later receives the resuming request doesn't need to guess
	// which thread paused where.
	fanout *interrupt.Fanout
}

// New builds a Server over svc. A nil logger/metrics is replaced with a
// no-op implementation. A nil fanout disables cross-replica pause
// notification.
func New(svc *orchestrator.Service, logger telemetry.Logger, metrics telemetry.Metrics, fanout *interrupt.Fanout) *Server {
	if logger == nil {
		logger = telemetry.NewNoopLogger()
	}
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	return &Server{svc: svc, logger: logger, metrics: metrics, fanout: fanout}
}

// ServiceDesc returns the grpc.ServiceDesc to register against a
// *grpc.Server, e.g. grpcServer.RegisterService(grpcserver.ServiceDesc(), s).
func ServiceDesc() *grpc.ServiceDesc {
	return &grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*any)(nil),
		Methods: []grpc.MethodDesc{
			{MethodName: "Chat", Handler: chatHandler},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "orchestrator.proto",
	}
}

func chatHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ChatRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	s := srv.(*Server)
	if interceptor == nil {
		return s.chat(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fmt.Sprintf("/%s/Chat", serviceName)}
	handler := func(ctx context.Context, req any) (any, error) {
		return s.chat(ctx, req.(*ChatRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func (s *Server) chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	if req.UserID == "" || req.ConversationID == "" {
		return nil, status.Error(codes.InvalidArgument, "user_id and conversation_id are required")
	}

	result, err := s.svc.StreamChat(ctx, toChatRequest(req))
	if err != nil {
		s.metrics.IncCounter("chat_turns_total", 1, "outcome", "error")
		s.logger.Error(ctx, "chat turn failed", "user_id", req.UserID, "conversation_id", req.ConversationID, "error", err)
		return nil, status.Error(codes.Internal, err.Error())
	}
	s.metrics.IncCounter("chat_turns_total", 1, "outcome", "ok")

	resp := &ChatResponse{
		ThreadID:     result.ThreadID,
		Interrupted:  result.Interrupted,
		SelectedNode: result.SelectedNode,
		State:        map[string]any(result.FinalState),
	}
	if text, ok := result.FinalState["final_response"].(string); ok {
		resp.Response = text
	}
	if result.Interrupted && s.fanout != nil {
		if err := s.fanout.PublishPause(ctx, interrupt.PauseRequest{ThreadID: result.ThreadID, Reason: "interrupt_before"}); err != nil {
			s.logger.Warn(ctx, "publish pause notification failed", "thread_id", result.ThreadID, "error", err)
		}
	}
	return resp, nil
}

func toChatRequest(req *ChatRequest) orchestrator.ChatRequest {
	out := orchestrator.ChatRequest{
		UserID:         req.UserID,
		ConversationID: req.ConversationID,
		Query:          req.Query,
		AgentType:      req.AgentType,
		CursorOffset:   req.CursorOffset,
	}
	for _, m := range req.History {
		out.History = append(out.History, model.Message{Role: model.Role(m.Role), Content: m.Content})
	}
	if req.ActiveEditor != nil {
		out.ActiveEditor = &orchestrator.ActiveEditorInput{
			IsEditable:    req.ActiveEditor.IsEditable,
			Filename:      req.ActiveEditor.Filename,
			CanonicalPath: req.ActiveEditor.CanonicalPath,
			Language:      req.ActiveEditor.Language,
			Content:       req.ActiveEditor.Content,
			Frontmatter: orchestrator.ActiveEditorFrontmatterInput{
				Type:         req.ActiveEditor.Frontmatter.Type,
				Title:        req.ActiveEditor.Frontmatter.Title,
				Author:       req.ActiveEditor.Frontmatter.Author,
				Tags:         req.ActiveEditor.Frontmatter.Tags,
				Status:       req.ActiveEditor.Frontmatter.Status,
				CustomFields: req.ActiveEditor.Frontmatter.CustomFields,
			},
		}
	}
	if req.PermissionGrant != nil {
		out.PermissionGrant = &orchestrator.PermissionGrantInput{
			Permission: req.PermissionGrant.Permission,
			Granted:    req.PermissionGrant.Granted,
		}
	}
	return out
}
