package uploader

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"roamcms/internal/config"
)

// S3Uploader PUTs images into an S3-compatible bucket with SigV4
// request signing. Used by providers that keep assets on their own
// object storage instead of Cloudinary.
type S3Uploader struct {
	endpoint     *url.URL
	bucket       string
	region       string
	accessKey    string
	secretKey    string
	customDomain string
	client       *http.Client
}

func NewS3Uploader(cfg config.S3Config) (*S3Uploader, error) {
	if cfg.Bucket == "" || cfg.Region == "" || cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, errors.New("S3 配置不完整: 需要 bucket/region/access key/secret key")
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://s3.%s.amazonaws.com", cfg.Region)
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	parsed, err := url.Parse(strings.TrimSuffix(endpoint, "/"))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("无效的 S3 endpoint: %s", endpoint)
	}

	return &S3Uploader{
		endpoint:     parsed,
		bucket:       cfg.Bucket,
		region:       cfg.Region,
		accessKey:    cfg.AccessKeyID,
		secretKey:    cfg.SecretAccessKey,
		customDomain: strings.TrimRight(cfg.CustomDomain, "/"),
		client:       &http.Client{Timeout: 60 * time.Second},
	}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	key := AssetID(name) + extension(name)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	host := u.endpoint.Host
	canonicalURI := "/" + u.bucket + "/" + url.PathEscape(key)
	requestURL := u.endpoint.Scheme + "://" + host + canonicalURI

	now := time.Now().UTC()
	xAmzDate := now.Format("20060102T150405Z")
	dateStamp := now.Format("20060102")
	payloadHash := sha256Hex(data)

	headers := map[string]string{
		"content-length":       strconv.Itoa(len(data)),
		"content-type":         contentType,
		"host":                 host,
		"x-amz-content-sha256": payloadHash,
		"x-amz-date":           xAmzDate,
	}

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	headerLines := make([]string, 0, len(keys))
	for _, k := range keys {
		headerLines = append(headerLines, k+":"+headers[k])
	}
	signedHeaders := strings.Join(keys, ";")

	canonicalRequest := strings.Join([]string{
		http.MethodPut,
		canonicalURI,
		"",
		strings.Join(headerLines, "\n") + "\n",
		signedHeaders,
		payloadHash,
	}, "\n")

	scope := dateStamp + "/" + u.region + "/s3/aws4_request"
	stringToSign := strings.Join([]string{
		"AWS4-HMAC-SHA256",
		xAmzDate,
		scope,
		sha256Hex([]byte(canonicalRequest)),
	}, "\n")

	signature := hex.EncodeToString(hmacSHA256(u.signingKey(dateStamp), stringToSign))
	authorization := "AWS4-HMAC-SHA256 Credential=" + u.accessKey + "/" + scope +
		", SignedHeaders=" + signedHeaders +
		", Signature=" + signature

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, requestURL, bytes.NewReader(data))
	if err != nil {
		return "", uploadFailed("s3", err)
	}
	req.Host = host
	for _, k := range keys {
		req.Header.Set(k, headers[k])
	}
	req.Header.Set("Authorization", authorization)

	resp, err := u.client.Do(req)
	if err != nil {
		return "", uploadFailed("s3", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
		return "", uploadFailed("s3", fmt.Errorf("status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	if u.customDomain != "" {
		return u.customDomain + "/" + key, nil
	}
	return requestURL, nil
}

func (u *S3Uploader) signingKey(dateStamp string) []byte {
	kDate := hmacSHA256([]byte("AWS4"+u.secretKey), dateStamp)
	kRegion := hmacSHA256(kDate, u.region)
	kService := hmacSHA256(kRegion, "s3")
	return hmacSHA256(kService, "aws4_request")
}

func sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func hmacSHA256(key []byte, data string) []byte {
	mac := hmac.New(sha256.New, key)
	_, _ = mac.Write([]byte(data))
	return mac.Sum(nil)
}
