package handlers

import (
	"backend/models"
	"backend/repository"
	"backend/services"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// quotationForPayment is what the payment flow needs to know about the thing
// being paid for, regardless of whether it is a production or a design quotation.
type quotationForPayment struct {
	Price         int64
	DepositRate   float64
	PaymentStatus string
	CounterpartID int
	OrderCode     string
	SchoolEmail   string
	SchoolName    string
}

func loadQuotationForPayment(db *sql.DB, req models.PaymentURLRequest) (quotationForPayment, error) {
	var q quotationForPayment
	var err error
	switch {
	case req.QuotationID != 0:
		err = db.QueryRow(`
			SELECT q.price, q.deposit_rate, o.payment_status, q.garment_id,
			       o.code, o.school_email, o.school_name
			FROM quotations q
			JOIN orders o ON o.id = q.order_id
			WHERE q.id = $1 AND q.status = 'accepted'`, req.QuotationID).
			Scan(&q.Price, &q.DepositRate, &q.PaymentStatus, &q.CounterpartID,
				&q.OrderCode, &q.SchoolEmail, &q.SchoolName)
	case req.DesignQuotationID != 0:
		err = db.QueryRow(`
			SELECT q.price, q.deposit_rate, r.payment_status, q.designer_id,
			       r.code, r.school_email, r.school_name
			FROM design_quotations q
			JOIN design_requests r ON r.id = q.design_request_id
			WHERE q.id = $1 AND q.status = 'accepted'`, req.DesignQuotationID).
			Scan(&q.Price, &q.DepositRate, &q.PaymentStatus, &q.CounterpartID,
				&q.OrderCode, &q.SchoolEmail, &q.SchoolName)
	default:
		return q, fmt.Errorf("quotationId or designQuotationId is required")
	}
	return q, err
}

func buildGatewayURL(reference string, amount int64, returnURL string) string {
	base := os.Getenv("PAYMENT_GATEWAY_URL")
	if base == "" {
		base = "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"
	}

	params := url.Values{}
	params.Set("vnp_TxnRef", repository.GenerateTransactionCode(reference))
	// VNPay expects the amount multiplied by 100.
	params.Set("vnp_Amount", strconv.FormatInt(amount*100, 10))
	params.Set("vnp_OrderInfo", reference)
	params.Set("vnp_ReturnUrl", returnURL)
	params.Set("vnp_CreateDate", time.Now().Format("20060102150405"))

	return base + "?" + params.Encode()
}

// markQuotationPaid flips the payment stage of the order or design request so a
// second payment for the same quotation is charged in full, not as a deposit.
func markQuotationPaid(db *sql.DB, tx models.PaymentTransactionGorm) error {
	stage := "paid"
	if tx.Deposit {
		stage = "deposit_paid"
	}

	var err error
	if tx.QuotationID != nil {
		_, err = db.Exec(`
			UPDATE orders SET payment_status = $1, status = 'processing'
			WHERE id = (SELECT order_id FROM quotations WHERE id = $2)`, stage, *tx.QuotationID)
	} else if tx.DesignQuotationID != nil {
		_, err = db.Exec(`
			UPDATE design_requests SET payment_status = $1, status = 'processing'
			WHERE id = (SELECT design_request_id FROM design_quotations WHERE id = $2)`, stage, *tx.DesignQuotationID)
	}
	return err
}

// CreatePaymentURL godoc
// @Summary      Create a payment URL
// @Description  Computes the payment breakdown for a picked quotation and either returns a gateway redirect URL or settles immediately from the school's wallet
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      models.PaymentURLRequest  true  "Payment request"
// @Success      200   {object}  models.PaymentURLResponse
// @Failure      400   {object}  models.ErrorResponse
// @Failure      402   {object}  models.ErrorResponse
// @Failure      404   {object}  models.ErrorResponse
// @Failure      500   {object}  models.ErrorResponse
// @Router       /api/payments/url [post]
func CreatePaymentURL(db *sql.DB, gdb *gorm.DB, email *services.EmailService, fcm *services.FCMService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.PaymentURLRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if req.Method != models.PaymentMethodGateway && req.Method != models.PaymentMethodWallet {
			c.JSON(http.StatusBadRequest, gin.H{"error": "method must be gateway or wallet"})
			return
		}
		if (req.QuotationID == 0) == (req.DesignQuotationID == 0) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Exactly one of quotationId and designQuotationId is required"})
			return
		}

		quotation, err := loadQuotationForPayment(db, req)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "No accepted quotation found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		business := businessConfigOrDefault(db)
		fee := services.CalcServiceFee(quotation.Price, business.ServiceRate)
		amount := services.CalcPaymentAmount(quotation.Price, fee, quotation.DepositRate, quotation.PaymentStatus)
		deposit := services.IsDeposit(quotation.PaymentStatus)

		if business.MinPay > 0 && amount < business.MinPay {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment amount below minimum " + services.FormatVND(business.MinPay)})
			return
		}
		if business.MaxPay > 0 && amount > business.MaxPay {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment amount above maximum " + services.FormatVND(business.MaxPay)})
			return
		}

		reference := repository.GeneratePaymentReference()
		transaction := models.PaymentTransactionGorm{
			Reference:  reference,
			AccountID:  req.AccountID,
			Method:     req.Method,
			Price:      quotation.Price,
			ServiceFee: fee,
			Amount:     amount,
			Deposit:    deposit,
			Status:     "processing",
		}
		if req.QuotationID != 0 {
			transaction.QuotationID = &req.QuotationID
		} else {
			transaction.DesignQuotationID = &req.DesignQuotationID
		}

		response := models.PaymentURLResponse{
			Reference:     reference,
			Price:         quotation.Price,
			ServiceFee:    fee,
			PaymentAmount: amount,
			Deposit:       deposit,
		}

		if req.Method == models.PaymentMethodGateway {
			transaction.GatewayURL = buildGatewayURL(reference, amount, req.ReturnURL)
			if err := gdb.Create(&transaction).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction", "details": err.Error()})
				return
			}
			response.URL = transaction.GatewayURL
			c.JSON(http.StatusOK, response)
			return
		}

		// Wallet payment settles immediately inside one transaction: debit the
		// balance, record the completed payment, flip the payment stage.
		err = gdb.Transaction(func(tx *gorm.DB) error {
			var wallet models.WalletGorm
			if err := tx.Where("account_id = ?", req.AccountID).First(&wallet).Error; err != nil {
				return err
			}
			if !services.HasSufficientBalance(wallet.Balance, amount) {
				return fmt.Errorf("insufficient balance: have %s, need %s",
					services.FormatVND(wallet.Balance), services.FormatVND(amount))
			}

			res := tx.Model(&models.WalletGorm{}).
				Where("account_id = ? AND balance >= ?", req.AccountID, amount).
				Update("balance", gorm.Expr("balance - ?", amount))
			if err := checkWalletDebit(res, amount); err != nil {
				return err
			}

			now := time.Now()
			transaction.Status = "completed"
			transaction.CompletedAt = &now
			return tx.Create(&transaction).Error
		})
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
			return
		}

		if err := markQuotationPaid(db, transaction); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		response.URL = req.ReturnURL
		c.JSON(http.StatusOK, response)

		notifyPaymentCompleted(c, email, fcm, transaction, quotation)
	}
}

// checkWalletDebit interprets the conditional balance update. Zero affected
// rows means a concurrent debit spent the balance between the read and the
// update, so the payment must not settle.
func checkWalletDebit(res *gorm.DB, amount int64) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("insufficient balance for %s", services.FormatVND(amount))
	}
	return nil
}

// claimTransaction flips a processing transaction in a single statement, so
// two concurrent callbacks for the same reference cannot both settle it.
func claimTransaction(gdb *gorm.DB, reference string, updates map[string]interface{}) (bool, error) {
	res := gdb.Model(&models.PaymentTransactionGorm{}).
		Where("reference = ? AND status = 'processing'", reference).
		Updates(updates)
	return claimedRows(res)
}

func claimedRows(res *gorm.DB) (bool, error) {
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// notifyPaymentCompleted fans out the receipt email and push notification.
// Both are best effort.
func notifyPaymentCompleted(c *gin.Context, email *services.EmailService, fcm *services.FCMService,
	transaction models.PaymentTransactionGorm, quotation quotationForPayment) {

	if email != nil && quotation.SchoolEmail != "" {
		receipt := services.PaymentReceipt{
			Email:         quotation.SchoolEmail,
			CustomerName:  quotation.SchoolName,
			Reference:     transaction.Reference,
			OrderCode:     quotation.OrderCode,
			Price:         transaction.Price,
			ServiceFee:    transaction.ServiceFee,
			PaymentAmount: transaction.Amount,
			Deposit:       transaction.Deposit,
			PaidAt:        time.Now(),
		}
		go func() {
			_ = email.SendPaymentReceipt(receipt)
		}()
	}

	if fcm != nil {
		ctx := c.Copy()
		go func() {
			_ = fcm.NotifyPaymentCompleted(ctx, strconv.Itoa(quotation.CounterpartID),
				transaction.Reference, transaction.Amount)
		}()
	}
}

// PaymentCallback godoc
// @Summary      Payment gateway callback
// @Description  Marks a processing gateway transaction completed or failed based on the gateway result
// @Tags         payments
// @Produce      json
// @Param        reference  query     string  true  "Payment reference"
// @Param        status     query     string  true  "Gateway result: success or failed"
// @Success      200  {object}  models.MessageResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /api/payments/callback [get]
func PaymentCallback(db *sql.DB, gdb *gorm.DB, email *services.EmailService, fcm *services.FCMService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reference := c.Query("reference")
		result := c.Query("status")
		if reference == "" || result == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "reference and status are required"})
			return
		}

		var transaction models.PaymentTransactionGorm
		if err := gdb.Where("reference = ?", reference).First(&transaction).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		if transaction.Status != "processing" {
			c.JSON(http.StatusConflict, gin.H{"error": "Transaction already settled"})
			return
		}

		if result != "success" {
			claimed, err := claimTransaction(gdb, reference, map[string]interface{}{"status": "failed"})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			if !claimed {
				c.JSON(http.StatusConflict, gin.H{"error": "Transaction already settled"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "Payment failed"})
			return
		}

		now := time.Now()
		claimed, err := claimTransaction(gdb, reference, map[string]interface{}{
			"status":       "completed",
			"completed_at": &now,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !claimed {
			c.JSON(http.StatusConflict, gin.H{"error": "Transaction already settled"})
			return
		}
		transaction.Status = "completed"
		transaction.CompletedAt = &now

		if err := markQuotationPaid(db, transaction); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Payment completed"})

		req := models.PaymentURLRequest{AccountID: transaction.AccountID}
		if transaction.QuotationID != nil {
			req.QuotationID = *transaction.QuotationID
		}
		if transaction.DesignQuotationID != nil {
			req.DesignQuotationID = *transaction.DesignQuotationID
		}
		if quotation, err := loadQuotationForPayment(db, req); err == nil {
			notifyPaymentCompleted(c, email, fcm, transaction, quotation)
		}
	}
}

// GetWallet godoc
// @Summary      Get wallet balance
// @Tags         payments
// @Produce      json
// @Param        account_id  path      int  true  "Account ID"
// @Success      200  {object}  models.WalletResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/wallets/{account_id} [get]
func GetWallet(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, err := strconv.Atoi(c.Param("account_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account ID"})
			return
		}

		var wallet models.WalletGorm
		if err := gdb.Where("account_id = ?", accountID).First(&wallet).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
			return
		}

		c.JSON(http.StatusOK, models.WalletResponse{
			AccountID: wallet.AccountID,
			Balance:   wallet.Balance,
		})
	}
}
