package server

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/core"
)

// AdminServiceName is the fully qualified name of the admin service
const AdminServiceName = "territory.admin.v1.MatchAdmin"

const (
	getSnapshotMethod = "/" + AdminServiceName + "/GetSnapshot"
	resetMatchMethod  = "/" + AdminServiceName + "/ResetMatch"
)

// MatchAdminServer is the admin plane of a running match. Payloads use the
// well-known Struct type so no generated code is needed.
type MatchAdminServer interface {
	// GetSnapshot returns the current match state
	GetSnapshot(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	// ResetMatch starts a rematch. The request may carry a "reason" string.
	ResetMatch(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// MatchAdminServiceDesc describes the admin service to grpc
var MatchAdminServiceDesc = grpc.ServiceDesc{
	ServiceName: AdminServiceName,
	HandlerType: (*MatchAdminServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetSnapshot", Handler: getSnapshotHandler},
		{MethodName: "ResetMatch", Handler: resetMatchHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "territory/admin/v1/admin.proto",
}

func getSnapshotHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MatchAdminServer).GetSnapshot(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getSnapshotMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MatchAdminServer).GetSnapshot(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func resetMatchHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MatchAdminServer).ResetMatch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: resetMatchMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MatchAdminServer).ResetMatch(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// RegisterMatchAdminServer registers srv on s
func RegisterMatchAdminServer(s grpc.ServiceRegistrar, srv MatchAdminServer) {
	s.RegisterService(&MatchAdminServiceDesc, srv)
}

// AdminService serves the admin plane from the match loop
type AdminService struct {
	loop   *Loop
	logger zerolog.Logger
}

// NewAdminService creates the admin service for loop
func NewAdminService(loop *Loop, logger zerolog.Logger) *AdminService {
	return &AdminService{
		loop:   loop,
		logger: logger.With().Str("component", "AdminService").Logger(),
	}
}

func (s *AdminService) GetSnapshot(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	snap, err := s.loop.Snapshot(ctx)
	if err != nil {
		return nil, loopStatus(err)
	}
	return snapshotStruct(snap)
}

func (s *AdminService) ResetMatch(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	reason := "admin reset"
	if v, ok := req.GetFields()["reason"]; ok && v.GetStringValue() != "" {
		reason = v.GetStringValue()
	}

	s.logger.Info().Str("reason", reason).Msg("Rematch requested")

	snap, err := s.loop.Reset(ctx, reason)
	if err != nil {
		return nil, loopStatus(err)
	}
	return snapshotStruct(snap)
}

func loopStatus(err error) error {
	switch {
	case errors.Is(err, ErrLoopStopped):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		return status.Errorf(codes.FailedPrecondition, "%v", err)
	}
}

// snapshotStruct converts a snapshot into a Struct. Only cells that are
// occupied or carry terrain are listed.
func snapshotStruct(snap Snapshot) (*structpb.Struct, error) {
	cells := make([]interface{}, 0)
	for i, t := range snap.Grid {
		if t.IsEmpty() && t.Terrain == core.TerrainNone {
			continue
		}
		pos := core.FromIndex(i)
		cell := map[string]interface{}{
			"x":       pos.X,
			"y":       pos.Y,
			"terrain": t.Terrain.String(),
		}
		if t.IsOccupied() {
			cell["role"] = t.Role.String()
			cell["owner"] = t.Owner.String()
			cell["level"] = t.Level
			cell["hp"] = t.HP
		}
		cells = append(cells, cell)
	}

	fields := map[string]interface{}{
		"match_id":   snap.MatchID,
		"phase":      snap.Phase.String(),
		"game_phase": snap.GamePhase.String(),
		"turn":       snap.Turn.String(),
		"seated":     snap.Seated,
		"sequence":   snap.Sequence,
		"farms":      []interface{}{snap.Farms[core.Red], snap.Farms[core.Blue]},
		"cells":      cells,
		"board":      snap.Board,
		"has_result": snap.HasResult,
	}
	if snap.HasResult {
		fields["draw"] = snap.Draw
		if !snap.Draw {
			fields["winner"] = snap.Winner.String()
		}
	}

	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode snapshot: %v", err)
	}
	return out, nil
}

// AdminOptions configures the admin gRPC server
type AdminOptions struct {
	EnableReflection bool
}

// NewAdminServer builds the gRPC server carrying the admin service, the
// health service and optionally reflection
func NewAdminServer(loop *Loop, opts AdminOptions, logger zerolog.Logger) (*grpc.Server, *health.Server) {
	logger = logger.With().Str("component", "AdminServer").Logger()

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			loggingInterceptor(logger),
			recoveryInterceptor(logger),
		),
		grpc.ChainStreamInterceptor(
			streamLoggingInterceptor(logger),
			streamRecoveryInterceptor(logger),
		),
	)

	RegisterMatchAdminServer(grpcServer, NewAdminService(loop, logger))

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(AdminServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	if opts.EnableReflection {
		reflection.Register(grpcServer)
		logger.Info().Msg("gRPC reflection enabled")
	}

	return grpcServer, healthServer
}

// AdminClient calls the admin service
type AdminClient struct {
	cc grpc.ClientConnInterface
}

// NewAdminClient creates a client on cc
func NewAdminClient(cc grpc.ClientConnInterface) *AdminClient {
	return &AdminClient{cc: cc}
}

func (c *AdminClient) GetSnapshot(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, getSnapshotMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AdminClient) ResetMatch(ctx context.Context, reason string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(map[string]interface{}{"reason": reason})
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, resetMatchMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
