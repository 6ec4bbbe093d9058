package feast

import (
	"context"
	"fmt"
	"strconv"
	"time"

	feastsdk "github.com/feast-dev/feast/sdk/go"
)

// GrpcClient 基于官方 Feast Go SDK 的 gRPC 实现。
// feature 包只依赖 Client 接口，这里是唯一的具体实现。
type GrpcClient struct {
	client *feastsdk.GrpcClient

	// Project 项目名称
	Project string

	// Endpoint 服务端点（用于信息展示）
	Endpoint string
}

// NewGrpcClient 创建 Feast gRPC 客户端。port 为 0 时使用默认端口 6565。
// 配置了 static token 时走带凭证的安全连接。
func NewGrpcClient(host string, port int, project string, opts ...ClientOption) (*GrpcClient, error) {
	if port == 0 {
		port = 6565
	}

	cfg := &ClientConfig{
		Endpoint: fmt.Sprintf("%s:%d", host, port),
		Project:  project,
		Timeout:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var sdkClient *feastsdk.GrpcClient
	var err error
	if cfg.Auth != nil && cfg.Auth.Type == "static" && cfg.Auth.Token != "" {
		security := feastsdk.SecurityConfig{
			EnableTLS:  false,
			Credential: feastsdk.NewStaticCredential(cfg.Auth.Token),
		}
		sdkClient, err = feastsdk.NewSecureGrpcClient(host, port, security)
	} else {
		sdkClient, err = feastsdk.NewGrpcClient(host, port)
	}
	if err != nil {
		return nil, fmt.Errorf("feast grpc client: %w", err)
	}

	return &GrpcClient{
		client:   sdkClient,
		Project:  project,
		Endpoint: cfg.Endpoint,
	}, nil
}

// GetOnlineFeatures 按实体行批量拉取在线特征。
func (c *GrpcClient) GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error) {
	if len(req.Features) == 0 {
		return nil, fmt.Errorf("features are required")
	}
	if len(req.EntityRows) == 0 {
		return nil, fmt.Errorf("entity rows are required")
	}

	project := req.Project
	if project == "" {
		project = c.Project
	}
	if project == "" {
		return nil, fmt.Errorf("project is required")
	}

	rows := make([]feastsdk.Row, len(req.EntityRows))
	for i, entityRow := range req.EntityRows {
		rows[i] = toRow(entityRow)
	}

	sdkResp, err := c.client.GetOnlineFeatures(ctx, &feastsdk.OnlineFeaturesRequest{
		Features: req.Features,
		Entities: rows,
		Project:  project,
	})
	if err != nil {
		return nil, fmt.Errorf("feast get online features: %w", err)
	}

	respRows := sdkResp.Rows()
	if len(respRows) != len(req.EntityRows) {
		return nil, fmt.Errorf("response row count mismatch: expected %d, got %d", len(req.EntityRows), len(respRows))
	}

	vectors := make([]FeatureVector, len(respRows))
	for i, row := range respRows {
		values := make(map[string]interface{})
		for _, name := range req.Features {
			if raw, ok := row[name]; ok {
				if v := normalizeValue(raw); v != nil {
					values[name] = v
				}
			}
		}
		vectors[i] = FeatureVector{
			Values:    values,
			EntityRow: req.EntityRows[i],
		}
	}

	return &GetOnlineFeaturesResponse{FeatureVectors: vectors}, nil
}

// Close 实现 Client 接口。官方 SDK 没有显式 Close，连接由 gRPC 库管理。
func (c *GrpcClient) Close() error {
	c.client = nil
	return nil
}

// toRow 把实体行转成 SDK 的 Row（map[string]*types.Value），数值走 SDK 辅助函数。
func toRow(entityRow map[string]interface{}) feastsdk.Row {
	row := make(feastsdk.Row, len(entityRow))
	for k, v := range entityRow {
		switch val := v.(type) {
		case string:
			row[k] = feastsdk.StrVal(val)
		case int:
			row[k] = feastsdk.Int64Val(int64(val))
		case int64:
			row[k] = feastsdk.Int64Val(val)
		case int32:
			row[k] = feastsdk.Int64Val(int64(val))
		case float64:
			row[k] = feastsdk.DoubleVal(val)
		case float32:
			row[k] = feastsdk.FloatVal(val)
		case bool:
			row[k] = feastsdk.BoolVal(val)
		case []byte:
			row[k] = feastsdk.BytesVal(val)
		default:
			row[k] = feastsdk.StrVal(fmt.Sprintf("%v", val))
		}
	}
	return row
}

// normalizeValue 把 SDK 返回值归一：数值统一 float64，bytes 转 string。
// 特征消费方（feature.FeastEnrichNode）只合入数值特征。
func normalizeValue(val interface{}) interface{} {
	switch v := val.(type) {
	case nil:
		return nil
	case string:
		return v
	case int64:
		return float64(v)
	case int32:
		return float64(v)
	case int:
		return float64(v)
	case float64:
		return v
	case float32:
		return float64(v)
	case bool:
		if v {
			return float64(1)
		}
		return float64(0)
	case []byte:
		return string(v)
	default:
		str := fmt.Sprintf("%v", val)
		if f, err := strconv.ParseFloat(str, 64); err == nil {
			return f
		}
		return str
	}
}

var _ Client = (*GrpcClient)(nil)
