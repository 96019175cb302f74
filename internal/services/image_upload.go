package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// ImgurResponse is the relevant subset of the Imgur API response.
type ImgurResponse struct {
	Data struct {
		ID   string `json:"id"`
		Link string `json:"link"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

// ImageService uploads user-submitted images (avatars, restaurant photos) to
// Imgur and hands back the hosted URL. It is the only outbound collaborator
// in the system.
type ImageService struct {
	clientID string
	endpoint string
	client   *http.Client
}

func NewImageService(clientID string) *ImageService {
	return &ImageService{
		clientID: clientID,
		endpoint: "https://api.imgur.com/3/image",
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// HandleFile uploads the form file when one was submitted. A nil header
// yields an empty URL and no error, which callers treat as "keep the
// existing image".
func (s *ImageService) HandleFile(header *multipart.FileHeader) (string, error) {
	if header == nil {
		return "", nil
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	return s.upload(file)
}

func (s *ImageService) upload(file multipart.File) (string, error) {
	if s.clientID == "" {
		return "", fmt.Errorf("IMGUR_CLIENT_ID is not configured")
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	base64Image := base64.StdEncoding.EncodeToString(fileBytes)

	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)
	if err := writer.WriteField("image", base64Image); err != nil {
		return "", fmt.Errorf("build request body: %w", err)
	}
	if err := writer.WriteField("type", "base64"); err != nil {
		return "", fmt.Errorf("build request body: %w", err)
	}
	writer.Close()

	req, err := http.NewRequest(http.MethodPost, s.endpoint, &requestBody)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+s.clientID)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var imgurResp ImgurResponse
	if err := json.Unmarshal(body, &imgurResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if !imgurResp.Success {
		return "", fmt.Errorf("imgur upload failed: status %d", imgurResp.Status)
	}

	return imgurResp.Data.Link, nil
}
