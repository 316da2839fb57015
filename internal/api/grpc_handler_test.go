package api

import (
	"context"
	"net"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"blinds-storefront/internal/catalog"
	"blinds-storefront/internal/customize"
	"blinds-storefront/internal/domain"
	"blinds-storefront/internal/store"
)

const bufSize = 1024 * 1024

func setupTestGRPC(t *testing.T) (*grpc.ClientConn, *MockProductSource) {
	t.Helper()
	products := new(MockProductSource)
	catalogSvc := catalog.NewService(products, catalog.ResolveFeatures, catalog.DefaultRelatedLimit, zerolog.Nop())

	lis := bufconn.Listen(bufSize)
	s := grpc.NewServer()
	RegisterStorefrontServer(s, NewGRPCHandler(catalogSvc, customize.NewEngine("GBP"), zerolog.Nop()))
	go func() {
		_ = s.Serve(lis)
	}()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn, products
}

func method(name string) string {
	return "/" + StorefrontServiceName + "/" + name
}

func TestGRPCHandler_GetProduct(t *testing.T) {
	conn, products := setupTestGRPC(t)
	products.On("GetProductBySlug", mock.Anything, "vertical-blind").Return(verticalBlind(), nil).Once()
	products.On("ListProducts", mock.Anything, mock.Anything).Return([]domain.ProductData{*rollerBlind()}, nil).Once()

	out := &structpb.Struct{}
	err := conn.Invoke(context.Background(), method("GetProduct"), wrapperspb.String("vertical-blind"), out)

	require.NoError(t, err)
	product := out.GetFields()["product"].GetStructValue().GetFields()
	assert.Equal(t, "vertical-blind", product["slug"].GetStringValue())
	assert.Equal(t, 37.16, product["price"].GetNumberValue())
	assert.Len(t, product["relatedProducts"].GetListValue().GetValues(), 1)
	assert.Equal(t, 100.0, out.GetFields()["basePricePerSquareMeter"].GetNumberValue())
}

func TestGRPCHandler_GetProduct_Errors(t *testing.T) {
	conn, products := setupTestGRPC(t)
	products.On("GetProductBySlug", mock.Anything, "missing").Return(nil, store.ErrProductNotFound).Once()

	err := conn.Invoke(context.Background(), method("GetProduct"), wrapperspb.String("missing"), &structpb.Struct{})
	assert.Equal(t, codes.NotFound, status.Code(err))

	err = conn.Invoke(context.Background(), method("GetProduct"), wrapperspb.String("  "), &structpb.Struct{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGRPCHandler_QuotePrice(t *testing.T) {
	conn, products := setupTestGRPC(t)
	products.On("GetProductBySlug", mock.Anything, "roller-blind").Return(rollerBlind(), nil).Once()

	req, err := structpb.NewStruct(map[string]interface{}{
		"slug": "roller-blind",
		"configuration": map[string]interface{}{
			"width": 24, "widthFraction": "0", "height": 24, "heightFraction": "0",
			"controlOption": "spring",
			"chainColor":    "chrome",
		},
	})
	require.NoError(t, err)

	out := &structpb.Struct{}
	require.NoError(t, conn.Invoke(context.Background(), method("QuotePrice"), req, out))

	fields := out.GetFields()
	assert.Equal(t, string(customize.FamilyRoller), fields["family"].GetStringValue())
	assert.Equal(t, 19.0, fields["additionalCost"].GetNumberValue())
	// 80 * 0.37161216 + 19 = 48.7289728
	assert.Equal(t, 48.73, fields["displayTotal"].GetNumberValue())
	assert.Equal(t, "£48.73", fields["formatted"].GetStringValue())
}

func TestGRPCHandler_QuotePrice_InvalidArgument(t *testing.T) {
	conn, _ := setupTestGRPC(t)

	req, err := structpb.NewStruct(map[string]interface{}{"configuration": map[string]interface{}{}})
	require.NoError(t, err)

	err = conn.Invoke(context.Background(), method("QuotePrice"), req, &structpb.Struct{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGRPCHandler_MapFilterTags(t *testing.T) {
	conn, _ := setupTestGRPC(t)

	req, err := structpb.NewStruct(map[string]interface{}{"filterType": "color", "value": "Navy Blue"})
	require.NoError(t, err)

	out := &structpb.ListValue{}
	require.NoError(t, conn.Invoke(context.Background(), method("MapFilterTags"), req, out))
	assert.Equal(t, []interface{}{"navy blue"}, out.AsSlice())

	req, err = structpb.NewStruct(map[string]interface{}{"filterType": "color"})
	require.NoError(t, err)
	err = conn.Invoke(context.Background(), method("MapFilterTags"), req, &structpb.ListValue{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
