package services

import (
	"bytes"
	"context"
	"crypto/rsa"
	"crypto/x509"
	"database/sql"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/jwt"
)

// FCMService handles Firebase Cloud Messaging operations using HTTP v1 API.
// It notifies garment factories and designers when their quotations are picked
// and when a payment for one of their orders completes.
type FCMService struct {
	projectID   string
	credentials *jwt.Config
	db          *sql.DB
	httpClient  *http.Client
	tokenSource oauth2.TokenSource
}

// ServiceAccountCredentials represents the structure of Firebase service account JSON
type ServiceAccountCredentials struct {
	Type                string `json:"type"`
	ProjectID           string `json:"project_id"`
	PrivateKeyID        string `json:"private_key_id"`
	PrivateKey          string `json:"private_key"`
	ClientEmail         string `json:"client_email"`
	ClientID            string `json:"client_id"`
	AuthURI             string `json:"auth_uri"`
	TokenURI            string `json:"token_uri"`
	AuthProviderCertURL string `json:"auth_provider_x509_cert_url"`
	ClientCertURL       string `json:"client_x509_cert_url"`
}

// NewFCMService initializes and returns a new FCM service using HTTP v1 API.
// credentialsPath: Path to Firebase service account JSON file.
func NewFCMService(credentialsPath string, db *sql.DB) (*FCMService, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("credentials path is required")
	}

	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("error reading credentials file: %v", err)
	}

	var creds ServiceAccountCredentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("error parsing credentials: %v", err)
	}

	if _, err = parsePrivateKey(creds.PrivateKey); err != nil {
		return nil, fmt.Errorf("error parsing private key: %v", err)
	}

	// jwt.Config expects the private key as PEM bytes, with real newlines.
	privateKeyStr := strings.ReplaceAll(creds.PrivateKey, "\\n", "\n")

	config := &jwt.Config{
		Email:      creds.ClientEmail,
		PrivateKey: []byte(privateKeyStr),
		Scopes:     []string{"https://www.googleapis.com/auth/firebase.messaging"},
		TokenURL:   creds.TokenURI,
	}

	return &FCMService{
		projectID:   creds.ProjectID,
		credentials: config,
		db:          db,
		httpClient:  &http.Client{},
		tokenSource: config.TokenSource(context.Background()),
	}, nil
}

// parsePrivateKey parses a PEM-encoded private key
func parsePrivateKey(keyData string) (*rsa.PrivateKey, error) {
	keyData = strings.ReplaceAll(keyData, "\\n", "\n")
	keyData = strings.TrimSpace(keyData)

	block, _ := pem.Decode([]byte(keyData))
	if block == nil {
		return nil, fmt.Errorf("failed to parse PEM block")
	}

	privateKey, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		// Try PKCS1 format
		privateKey, err = x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse private key: %v", err)
		}
	}

	rsaKey, ok := privateKey.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("not an RSA private key")
	}

	return rsaKey, nil
}

// SendNotification sends a push notification to a single FCM token using HTTP v1 API
func (f *FCMService) SendNotification(ctx context.Context, token, title, body string, data map[string]string) error {
	if token == "" {
		return fmt.Errorf("FCM token cannot be empty")
	}

	oauthToken, err := f.tokenSource.Token()
	if err != nil {
		return fmt.Errorf("error getting OAuth token: %v", err)
	}

	if data == nil {
		data = map[string]string{}
	}

	message := map[string]interface{}{
		"message": map[string]interface{}{
			"token": token,
			"notification": map[string]string{
				"title": title,
				"body":  body,
			},
			"data": data,
			"android": map[string]interface{}{
				"priority": "high",
				"notification": map[string]interface{}{
					"sound":      "default",
					"channel_id": "default",
				},
			},
			"apns": map[string]interface{}{
				"headers": map[string]string{
					"apns-priority": "10",
				},
				"payload": map[string]interface{}{
					"aps": map[string]interface{}{
						"alert": map[string]string{
							"title": title,
							"body":  body,
						},
						"sound": "default",
					},
				},
			},
			"webpush": map[string]interface{}{
				"notification": map[string]interface{}{
					"title": title,
					"body":  body,
				},
				"fcm_options": map[string]interface{}{
					"link": data["action"],
				},
			},
		},
	}

	endpoint := fmt.Sprintf("https://fcm.googleapis.com/v1/projects/%s/messages:send", f.projectID)
	return f.sendHTTPv1Request(ctx, endpoint, oauthToken.AccessToken, message)
}

// SendNotificationToAccount sends a push notification to every registered device
// of a marketplace account (garment factory or designer).
func (f *FCMService) SendNotificationToAccount(ctx context.Context, accountID string, title, body string, data map[string]string) error {
	rows, err := f.db.Query(`SELECT fcm_token FROM account_devices WHERE account_id = $1 AND fcm_token <> ''`, accountID)
	if err != nil {
		return fmt.Errorf("error fetching FCM tokens for account %s: %v", accountID, err)
	}
	defer rows.Close()

	tokens := []string{}
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			log.Printf("Error scanning FCM token: %v", err)
			continue
		}
		tokens = append(tokens, token)
	}

	if len(tokens) == 0 {
		// Not an error, the account just has no registered device.
		return nil
	}

	failureCount := 0
	for _, token := range tokens {
		if err := f.SendNotification(ctx, token, title, body, data); err != nil {
			failureCount++
			log.Printf("Failed to send to account %s: %v", accountID, err)
		}
	}

	if failureCount > 0 {
		log.Printf("Failed to send %d notifications out of %d for account %s", failureCount, len(tokens), accountID)
	}

	return nil
}

// NotifyQuotationPicked tells a garment factory or designer that the school
// picked their quotation.
func (f *FCMService) NotifyQuotationPicked(ctx context.Context, accountID string, orderCode string) error {
	return f.SendNotificationToAccount(ctx, accountID,
		"Quotation accepted",
		fmt.Sprintf("Your quotation for order %s has been accepted.", orderCode),
		map[string]string{"action": "/orders/" + orderCode})
}

// NotifyPaymentCompleted tells the counterparty that a payment went through.
func (f *FCMService) NotifyPaymentCompleted(ctx context.Context, accountID string, reference string, amount int64) error {
	return f.SendNotificationToAccount(ctx, accountID,
		"Payment received",
		fmt.Sprintf("Payment %s of %s has been completed.", reference, FormatVND(amount)),
		map[string]string{"action": "/payments/" + reference})
}

// SaveFCMToken saves or updates the FCM token for an account device
func (f *FCMService) SaveFCMToken(accountID string, token string) error {
	_, err := f.db.Exec(`
		INSERT INTO account_devices (account_id, fcm_token, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (account_id, fcm_token) DO UPDATE SET updated_at = NOW()
	`, accountID, token)
	if err != nil {
		return fmt.Errorf("error saving FCM token: %v", err)
	}
	return nil
}

// RemoveFCMToken removes the FCM tokens for an account
func (f *FCMService) RemoveFCMToken(accountID string) error {
	_, err := f.db.Exec(`DELETE FROM account_devices WHERE account_id = $1`, accountID)
	if err != nil {
		return fmt.Errorf("error removing FCM token: %v", err)
	}
	return nil
}

// sendHTTPv1Request sends an HTTP POST request to FCM HTTP v1 API
func (f *FCMService) sendHTTPv1Request(ctx context.Context, endpoint, accessToken string, payload map[string]interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshaling payload: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", accessToken))

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errorResp map[string]interface{}
		if err := json.NewDecoder(resp.Body).Decode(&errorResp); err == nil {
			return fmt.Errorf("FCM API error (status %d): %v", resp.StatusCode, errorResp)
		}
		return fmt.Errorf("FCM API error: status code %d", resp.StatusCode)
	}

	var fcmResponse struct {
		Name string `json:"name"`
	}
	// Response might be empty on success, which is fine.
	if err := json.NewDecoder(resp.Body).Decode(&fcmResponse); err == nil && fcmResponse.Name != "" {
		log.Printf("FCM notification sent: %s", fcmResponse.Name)
	}

	return nil
}
