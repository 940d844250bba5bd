// Package ocr 封装 OCR.space 的图片文字识别 HTTP API。
// 纯 I/O 插件：把图片换成文本，供查询链路继续解析。
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/ludokit/ludokit/core"
)

// DefaultEndpoint 是 OCR.space 的解析端点。
const DefaultEndpoint = "https://api.ocr.space/parse/image"

// SpaceClient 是 OCR.space 客户端。
//
// 免费 API Key 有每日额度，Keys 支持配置多把并按序轮换：
// 一把失败/限流就换下一把，全部失败才报错。
// Languages 按序尝试（先本地语言后英语的典型用法）。
type SpaceClient struct {
	// Keys 是按优先级排列的 API Key 列表
	Keys []string

	// Languages 识别语言代码（"eng"、"spa" 等），默认只试 "eng"
	Languages []string

	// Endpoint 默认 DefaultEndpoint
	Endpoint string

	// HTTPClient 默认 30s 超时
	HTTPClient *http.Client
}

// NewSpaceClient 创建 OCR.space 客户端。
func NewSpaceClient(keys ...string) *SpaceClient {
	return &SpaceClient{
		Keys:      keys,
		Languages: []string{"eng"},
		Endpoint:  DefaultEndpoint,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ErrNoText 表示所有 Key/语言组合都没有识别出文字
var ErrNoText = core.NewDomainError(core.ModuleOCR, core.ErrorCodeNotFound, "ocr: no text detected")

type parseResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool   `json:"IsErroredOnProcessing"`
	ErrorMessage          any    `json:"ErrorMessage"`
	OCRExitCode           int    `json:"OCRExitCode"`
}

// ExtractText 识别图片中的文字。
// 依次尝试每把 Key 与每种语言，取第一个非空结果；
// 全部尝试后仍无文字返回 ErrNoText。
func (c *SpaceClient) ExtractText(ctx context.Context, image []byte) (string, error) {
	if len(c.Keys) == 0 {
		return "", core.NewDomainError(core.ModuleOCR, core.ErrorCodeInvalidInput, "ocr: no api keys configured")
	}

	languages := c.Languages
	if len(languages) == 0 {
		languages = []string{"eng"}
	}

	var lastErr error
	for _, key := range c.Keys {
		for _, lang := range languages {
			text, err := c.parse(ctx, key, lang, image)
			if err != nil {
				lastErr = err
				continue
			}
			if text != "" {
				return text, nil
			}
		}
	}

	if lastErr != nil {
		return "", fmt.Errorf("ocr: all keys failed: %w", lastErr)
	}
	return "", ErrNoText
}

func (c *SpaceClient) parse(ctx context.Context, apiKey, language string, image []byte) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("image", "image.jpg")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(image); err != nil {
		return "", err
	}

	fields := map[string]string{
		"apikey":            apiKey,
		"language":          language,
		"isOverlayRequired": "false",
		"filetype":          "JPG",
		"OCREngine":         "2",
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return "", err
		}
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("ocr: status=%d body=%s", resp.StatusCode, string(body))
	}

	var parsed parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("ocr: decode response: %w", err)
	}
	if parsed.IsErroredOnProcessing {
		return "", fmt.Errorf("ocr: processing error: %v", parsed.ErrorMessage)
	}
	if len(parsed.ParsedResults) == 0 {
		return "", nil
	}

	// 识别文本中的换行压成空格，方便后续按单行查询解析
	text := strings.ReplaceAll(parsed.ParsedResults[0].ParsedText, "\n", " ")
	return strings.TrimSpace(text), nil
}
