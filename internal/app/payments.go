package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/edusphere/elearning-platform/internal/domain"
	"github.com/shopspring/decimal"
)

var subscriptionPlanAmounts = map[domain.SubscriptionPlan]decimal.Decimal{
	domain.PlanMonthly: decimal.NewFromInt(999),
	domain.PlanYearly:  decimal.NewFromInt(9999),
}

const paymentCurrency = "INR"

// paymentReceipt builds the gateway receipt reference. Razorpay caps
// receipts at 40 characters, so only the trailing digits of the timestamp
// are kept.
func paymentReceipt(prefix string, now time.Time) string {
	ts := fmt.Sprintf("%d", now.Unix())
	if len(ts) > 8 {
		ts = ts[len(ts)-8:]
	}

	return fmt.Sprintf("%s_%s", prefix, ts)
}

type createOrderRequest struct {
	CourseId int `json:"courseId" validate:"required,gte=1"`
}

type orderResponse struct {
	OrderId  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyId    string `json:"keyId"`
}

func (app *Application) CreateCoursePaymentOrder(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	var input createOrderRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	course, err := app.courseRepo.GetById(r.Context(), input.CourseId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if !course.IsPublished {
		app.badRequestResponse(w, r, domain.ErrCourseNotPublished)
		return
	}

	if !course.Price.IsPositive() {
		app.badRequestResponse(w, r, errors.New("this course is free, enroll directly"))
		return
	}

	if _, err := app.enrollmentRepo.GetByStudentAndCourse(r.Context(), userId, course.ID); err == nil {
		app.editConflictResponseWithErr(w, r, domain.ErrAlreadyEnrolled)
		return
	} else if !errors.Is(err, domain.ErrRecordNotFound) {
		app.serverErrorResponse(w, r, err)
		return
	}

	receipt := paymentReceipt(fmt.Sprintf("c_%d", course.ID), time.Now())

	order, err := app.paymentProvider.CreateOrder(course.Price, paymentCurrency, receipt, map[string]any{
		"courseId": course.ID,
		"userId":   userId,
		"purpose":  string(domain.PurposeCourseEnrollment),
	})
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	payment := domain.Payment{
		PayerUserID:    userId,
		Amount:         course.Price,
		Currency:       order.Currency,
		Status:         domain.PaymentStatusPending,
		GatewayOrderId: order.ID,
		Purpose:        domain.PurposeCourseEnrollment,
		Metadata:       map[string]any{"course_id": course.ID},
	}

	err = app.paymentRepo.Create(r.Context(), &payment)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := orderResponse{
		OrderId:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyId:    app.paymentProvider.KeyID(),
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type verifyPaymentRequest struct {
	OrderId   string `json:"razorpayOrderId" validate:"required"`
	PaymentId string `json:"razorpayPaymentId" validate:"required"`
	Signature string `json:"razorpaySignature" validate:"required"`
}

func (app *Application) VerifyCoursePayment(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)
	userId := app.contextGetUserId(r)

	var input verifyPaymentRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	if !app.paymentProvider.VerifyPaymentSignature(input.OrderId, input.PaymentId, input.Signature) {
		logger.Warn("payment signature verification failed", "orderId", input.OrderId)
		app.badRequestResponse(w, r, domain.ErrInvalidSignature)
		return
	}

	result, err := app.paymentRepo.ConfirmCoursePayment(r.Context(), input.OrderId, input.PaymentId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if result.Payment.PayerUserID != userId {
		logger.Warn("payment verified by a different user than the payer",
			"orderId", input.OrderId, "payerId", result.Payment.PayerUserID, "userId", userId)
	}

	resp := map[string]any{
		"verified":          true,
		"courseId":          result.CourseID,
		"enrollmentCreated": result.EnrollmentCreated,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type createSubscriptionOrderRequest struct {
	Plan string `json:"plan" validate:"required,plan"`
}

func (app *Application) CreateSubscriptionOrder(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	var input createSubscriptionOrderRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	plan := domain.SubscriptionPlan(input.Plan)
	amount := subscriptionPlanAmounts[plan]

	receipt := paymentReceipt("ts", time.Now())

	order, err := app.paymentProvider.CreateOrder(amount, paymentCurrency, receipt, map[string]any{
		"teacherId": userId,
		"plan":      string(plan),
		"purpose":   string(domain.PurposeSubscription),
	})
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	payment := domain.Payment{
		PayerUserID:    userId,
		Amount:         amount,
		Currency:       order.Currency,
		Status:         domain.PaymentStatusPending,
		GatewayOrderId: order.ID,
		Purpose:        domain.PurposeSubscription,
		Metadata:       map[string]any{"plan": string(plan)},
	}

	err = app.paymentRepo.Create(r.Context(), &payment)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := orderResponse{
		OrderId:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyId:    app.paymentProvider.KeyID(),
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) VerifySubscriptionPayment(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input verifyPaymentRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	if !app.paymentProvider.VerifyPaymentSignature(input.OrderId, input.PaymentId, input.Signature) {
		logger.Warn("subscription signature verification failed", "orderId", input.OrderId)
		app.badRequestResponse(w, r, domain.ErrInvalidSignature)
		return
	}

	subscription, err := app.paymentRepo.ConfirmSubscriptionPayment(r.Context(), input.OrderId, input.PaymentId, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := map[string]any{
		"verified":  true,
		"status":    subscription.Status,
		"startDate": subscription.StartDate,
		"endDate":   subscription.EndDate,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type paymentHistoryItem struct {
	Id               int             `json:"id"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	Status           string          `json:"status"`
	Purpose          string          `json:"purpose"`
	GatewayOrderId   string          `json:"gatewayOrderId"`
	GatewayPaymentId *string         `json:"gatewayPaymentId,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

func (app *Application) GetPaymentHistory(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	payments, err := app.paymentRepo.GetAllByUser(r.Context(), userId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]paymentHistoryItem, 0, len(payments))
	for _, payment := range payments {
		resp = append(resp, paymentHistoryItem{
			Id:               payment.ID,
			Amount:           payment.Amount,
			Currency:         payment.Currency,
			Status:           string(payment.Status),
			Purpose:          string(payment.Purpose),
			GatewayOrderId:   payment.GatewayOrderId,
			GatewayPaymentId: payment.GatewayPaymentId,
			CreatedAt:        payment.CreatedAt,
		})
	}

	err = app.writeJSON(w, http.StatusOK, map[string]any{"payments": resp}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				Id      string `json:"id"`
				OrderId string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
		Refund struct {
			Entity struct {
				Id        string `json:"id"`
				PaymentId string `json:"payment_id"`
			} `json:"entity"`
		} `json:"refund"`
	} `json:"payload"`
}

// PaymentWebhookHandler reconciles gateway notifications. Once the signature
// checks out the response is always 200: returning an error for a business
// failure would only make the gateway retry an event we already logged.
func (app *Application) PaymentWebhookHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
	if err != nil {
		app.badRequestResponse(w, r, errors.New("unable to read request body"))
		return
	}

	signature := r.Header.Get("X-Razorpay-Signature")
	if signature == "" || !app.paymentProvider.VerifyWebhookSignature(body, signature) {
		logger.Warn("webhook signature verification failed")
		app.badRequestResponse(w, r, domain.ErrInvalidSignature)
		return
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		logger.Error("failed to decode webhook payload", "error", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	switch event.Event {
	case "payment.captured":
		// Capture is normally settled by the client-side verify call; the
		// webhook is just a confirmation.
		logger.Info("payment captured",
			"orderId", event.Payload.Payment.Entity.OrderId,
			"paymentId", event.Payload.Payment.Entity.Id)
	case "payment.failed":
		err := app.paymentRepo.MarkFailedByOrderId(r.Context(), event.Payload.Payment.Entity.OrderId)
		if err != nil {
			logger.Error("failed to mark payment as failed",
				"orderId", event.Payload.Payment.Entity.OrderId, "error", err)
		}
	case "refund.created":
		logger.Info("refund created",
			"refundId", event.Payload.Refund.Entity.Id,
			"paymentId", event.Payload.Refund.Entity.PaymentId)
	default:
		logger.Info("ignoring unhandled webhook event", "event", event.Event)
	}

	w.WriteHeader(http.StatusOK)
}
