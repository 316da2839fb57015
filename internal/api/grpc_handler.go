package api

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"blinds-storefront/internal/catalog"
	"blinds-storefront/internal/customize"
	"blinds-storefront/internal/domain"
	"blinds-storefront/internal/store"
)

// StorefrontServiceName is the fully-qualified gRPC service name.
const StorefrontServiceName = "storefront.v1.Storefront"

// StorefrontServer is the gRPC surface. Messages are protobuf well-known types
// carrying the same JSON shapes as the HTTP API.
type StorefrontServer interface {
	GetProduct(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	QuotePrice(context.Context, *structpb.Struct) (*structpb.Struct, error)
	MapFilterTags(context.Context, *structpb.Struct) (*structpb.ListValue, error)
}

// StorefrontServiceDesc describes StorefrontServer for grpc.Server.RegisterService.
var StorefrontServiceDesc = grpc.ServiceDesc{
	ServiceName: StorefrontServiceName,
	HandlerType: (*StorefrontServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetProduct", Handler: getProductHandler},
		{MethodName: "QuotePrice", Handler: quotePriceHandler},
		{MethodName: "MapFilterTags", Handler: mapFilterTagsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/v1/storefront.proto",
}

// RegisterStorefrontServer registers srv on s.
func RegisterStorefrontServer(s grpc.ServiceRegistrar, srv StorefrontServer) {
	s.RegisterService(&StorefrontServiceDesc, srv)
}

func getProductHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorefrontServer).GetProduct(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + StorefrontServiceName + "/GetProduct"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StorefrontServer).GetProduct(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func quotePriceHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorefrontServer).QuotePrice(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + StorefrontServiceName + "/QuotePrice"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StorefrontServer).QuotePrice(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func mapFilterTagsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorefrontServer).MapFilterTags(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + StorefrontServiceName + "/MapFilterTags"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StorefrontServer).MapFilterTags(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// GRPCHandler implements StorefrontServer.
type GRPCHandler struct {
	catalog CatalogService
	engine  *customize.Engine
	logger  zerolog.Logger
}

var _ StorefrontServer = (*GRPCHandler)(nil)

// NewGRPCHandler creates a new GRPCHandler.
func NewGRPCHandler(cs CatalogService, engine *customize.Engine, logger zerolog.Logger) *GRPCHandler {
	return &GRPCHandler{catalog: cs, engine: engine, logger: logger}
}

// --- Helper: Error Mapping ---
func (s *GRPCHandler) mapStoreErrorToGrpcStatus(err error, resourceName string, resourceID interface{}) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, store.ErrProductNotFound), errors.Is(err, store.ErrCartNotFound):
		return status.Errorf(codes.NotFound, "%s %v not found", resourceName, resourceID)
	case errors.Is(err, context.DeadlineExceeded):
		return status.Errorf(codes.DeadlineExceeded, "%s %v: %v", resourceName, resourceID, err)
	default:
		s.logger.Error().Err(err).Str("resource", resourceName).Interface("id", resourceID).Msg("gRPC store operation failed")
		return status.Errorf(codes.Internal, "Failed to process request for %s %v", resourceName, resourceID)
	}
}

// toStruct converts a JSON-encodable value into a structpb.Struct.
func toStruct(v interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, err
	}
	return out, nil
}

// fromStruct decodes a structpb.Struct into v through its JSON form.
func fromStruct(in *structpb.Struct, v interface{}) error {
	data, err := protojson.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (s *GRPCHandler) GetProduct(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	slug := strings.TrimSpace(req.GetValue())
	if slug == "" {
		return nil, status.Error(codes.InvalidArgument, "product slug is required")
	}

	page, err := s.catalog.ProductPage(ctx, slug)
	if err != nil {
		return nil, s.mapStoreErrorToGrpcStatus(err, "product", slug)
	}
	out, err := toStruct(page)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode product: %v", err)
	}
	return out, nil
}

// quoteRequest is the JSON shape of a QuotePrice request.
type quoteRequest struct {
	Slug          string                      `json:"slug"`
	Configuration domain.ProductConfiguration `json:"configuration"`
}

func (s *GRPCHandler) QuotePrice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in quoteRequest
	if err := fromStruct(req, &in); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid quote request: %v", err)
	}
	if in.Slug == "" {
		return nil, status.Error(codes.InvalidArgument, "slug is required")
	}
	if in.Configuration.Width < 0 || in.Configuration.Height < 0 {
		return nil, status.Error(codes.InvalidArgument, "width and height must not be negative")
	}

	page, err := s.catalog.LoadProduct(ctx, in.Slug)
	if err != nil {
		return nil, s.mapStoreErrorToGrpcStatus(err, "product", in.Slug)
	}
	quote := s.engine.Evaluate(page.Product, in.Configuration, page.Rate())
	out, err := toStruct(quote)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode quote: %v", err)
	}
	return out, nil
}

func (s *GRPCHandler) MapFilterTags(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	fields := req.GetFields()
	filterType := fields["filterType"].GetStringValue()
	value := fields["value"].GetStringValue()
	if strings.TrimSpace(value) == "" {
		return nil, status.Error(codes.InvalidArgument, "value is required")
	}

	tags := catalog.MapFilterToTagSlugs(filterType, value)
	values := make([]*structpb.Value, 0, len(tags))
	for _, tag := range tags {
		values = append(values, structpb.NewStringValue(tag))
	}
	return &structpb.ListValue{Values: values}, nil
}
