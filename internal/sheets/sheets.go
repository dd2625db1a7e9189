package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"event-dashboard/backend/config"
)

// ErrNoCredentials 未配置服务账号凭据
var ErrNoCredentials = errors.New("sheets: service account credentials not configured")

// ValuesReader 读取远程表格中某个区域的单元格（按行）
type ValuesReader interface {
	ReadRange(ctx context.Context, spreadsheetID, rangeName string) ([][]string, error)
}

type client struct {
	srv    *sheetsapi.Service
	logger *zap.Logger
}

// New 使用服务账号凭据创建只读表格客户端
// 凭据优先取 credentials_file，否则由各字段拼装成服务账号 JSON
func New(ctx context.Context, cfg *config.SheetsConfig, logger *zap.Logger) (ValuesReader, error) {
	if !cfg.HasCredentials() {
		return nil, ErrNoCredentials
	}

	key, err := credentialsJSON(cfg)
	if err != nil {
		return nil, err
	}

	jwtCfg, err := google.JWTConfigFromJSON(key, sheetsapi.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("解析服务账号凭据失败: %w", err)
	}

	return newWithOptions(ctx, logger, option.WithHTTPClient(jwtCfg.Client(ctx)))
}

func newWithOptions(ctx context.Context, logger *zap.Logger, opts ...option.ClientOption) (ValuesReader, error) {
	srv, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("创建 Sheets 服务失败: %w", err)
	}
	return &client{srv: srv, logger: logger}, nil
}

// serviceAccount Google 服务账号 JSON 结构
type serviceAccount struct {
	Type                    string `json:"type"`
	ProjectID               string `json:"project_id,omitempty"`
	PrivateKeyID            string `json:"private_key_id"`
	PrivateKey              string `json:"private_key"`
	ClientEmail             string `json:"client_email"`
	ClientID                string `json:"client_id"`
	AuthURI                 string `json:"auth_uri"`
	TokenURI                string `json:"token_uri"`
	AuthProviderX509CertURL string `json:"auth_provider_x509_cert_url"`
	ClientX509CertURL       string `json:"client_x509_cert_url,omitempty"`
	UniverseDomain          string `json:"universe_domain"`
}

func credentialsJSON(cfg *config.SheetsConfig) ([]byte, error) {
	if cfg.CredentialsFile != "" {
		b, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("读取凭据文件失败: %w", err)
		}
		return b, nil
	}

	return json.Marshal(serviceAccount{
		Type:                    "service_account",
		ProjectID:               cfg.ProjectID,
		PrivateKeyID:            cfg.PrivateKeyID,
		PrivateKey:              cfg.PrivateKey,
		ClientEmail:             cfg.ClientEmail,
		ClientID:                cfg.ClientID,
		AuthURI:                 "https://accounts.google.com/o/oauth2/auth",
		TokenURI:                "https://oauth2.googleapis.com/token",
		AuthProviderX509CertURL: "https://www.googleapis.com/oauth2/v1/certs",
		ClientX509CertURL:       cfg.ClientCertURL,
		UniverseDomain:          "googleapis.com",
	})
}

// ReadRange 读取区域内容；单元格统一转为字符串，空区域返回空切片
func (c *client) ReadRange(ctx context.Context, spreadsheetID, rangeName string) ([][]string, error) {
	resp, err := c.srv.Spreadsheets.Values.Get(spreadsheetID, rangeName).Context(ctx).Do()
	if err != nil {
		c.logger.Warn("读取表格区域失败",
			zap.String("range", rangeName),
			zap.Error(err),
		)
		return nil, fmt.Errorf("读取区域 %q 失败: %w", rangeName, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, r := range resp.Values {
		row := make([]string, len(r))
		for i, cell := range r {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
