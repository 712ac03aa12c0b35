package handlers

import (
	"log"
	"net/http"
	"net/netip"
	"strconv"
	"strings"

	"webcharge_api/internal/adapter/http/dto/request"
	"webcharge_api/internal/adapter/http/dto/response"
	"webcharge_api/internal/domain/entities"
	"webcharge_api/internal/usecase"
	"webcharge_api/internal/usecase/interfaces"
	"webcharge_api/pkg"

	"github.com/gin-gonic/gin"
)

const (
	defaultCountry      = "US"
	defaultPendingLimit = 50
	maxPendingLimit     = 500
)

// PaymentHandler receives the web-store payment webhooks.

type PaymentHandler struct {
	orchestrator usecase.IPaymentOrchestrator
	verifier     interfaces.IPaymentVerifier
}

// NewPaymentHandler builds the handler. A nil verifier skips provider checks.
func NewPaymentHandler(o usecase.IPaymentOrchestrator, verifier interfaces.IPaymentVerifier) *PaymentHandler {
	return &PaymentHandler{orchestrator: o, verifier: verifier}
}

// clientInfo takes the first X-Forwarded-For hop, then X-Real-IP, then the
// socket address, skipping header values that are not IP addresses. Country comes from Cloudflare's CF-IPCountry header and
// falls back to defaultCountry unless it is a two-letter code.
func clientInfo(c *gin.Context) request.ClientInfo {
	ip := ""
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		ip = headerIP(strings.Split(fwd, ",")[0])
	}
	if ip == "" {
		ip = headerIP(c.GetHeader("X-Real-IP"))
	}
	if ip == "" {
		ip = c.RemoteIP()
	}
	if ip == "" {
		ip = "unknown"
	}
	return request.ClientInfo{IP: ip, Country: normalizeCountry(c.GetHeader("CF-IPCountry"))}
}

func headerIP(raw string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return addr.String()
}

func normalizeCountry(raw string) string {
	country := strings.ToUpper(strings.TrimSpace(raw))
	if len(country) != 2 || country[0] < 'A' || country[0] > 'Z' || country[1] < 'A' || country[1] > 'Z' {
		return defaultCountry
	}
	return country
}

func (h *PaymentHandler) PaymentSuccess(c *gin.Context) {
	var payload request.PaymentSuccessRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[payment][handler] success invalid payload err=%v", err)
		writeError(c, errInvalidRequest)
		return
	}
	ev, err := payload.ToEvent(clientInfo(c))
	if err != nil {
		writeError(c, errInvalidUID)
		return
	}

	if h.verifier != nil && payload.ProviderPaymentID != "" {
		approved, err := h.verifier.VerifyApproved(c.Request.Context(), payload.ProviderPaymentID)
		if err != nil {
			log.Printf("[payment][handler] provider verification failed order_id=%s err=%v", ev.OrderID, err)
			writeError(c, pkg.NewDomainError("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider unavailable", err, http.StatusBadGateway))
			return
		}
		if !approved {
			log.Printf("[payment][handler] provider did not approve order_id=%s provider_payment_id=%s", ev.OrderID, payload.ProviderPaymentID)
			writeError(c, pkg.NewDomainErrorSimple("PAYMENT_NOT_APPROVED", "Payment not approved by provider", http.StatusUnprocessableEntity))
			return
		}
	}

	out := h.orchestrator.ProcessSuccess(c.Request.Context(), ev)
	h.writeOutcome(c, ev.OrderID, out)
}

func (h *PaymentHandler) PaymentFailure(c *gin.Context) {
	var payload request.PaymentFailureRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[payment][handler] failure invalid payload err=%v", err)
		writeError(c, errInvalidRequest)
		return
	}
	ev, err := payload.ToEvent(clientInfo(c))
	if err != nil {
		writeError(c, errInvalidUID)
		return
	}

	out := h.orchestrator.ProcessFailure(c.Request.Context(), ev)
	if out.Succeeded() {
		c.JSON(http.StatusOK, response.FailureRecorded(ev.OrderID))
		return
	}
	h.writeOutcome(c, ev.OrderID, out)
}

// PendingGrants lists success records whose reward is not confirmed.
func (h *PaymentHandler) PendingGrants(c *gin.Context) {
	limit := defaultPendingLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(c, errInvalidRequest)
			return
		}
		limit = min(n, maxPendingLimit)
	}
	records, err := h.orchestrator.PendingGrants(c.Request.Context(), limit)
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	if records == nil {
		records = []entities.PaymentRecord{}
	}
	c.JSON(http.StatusOK, response.PendingGrantResponse{ReturnCode: 1, Data: records})
}

func (h *PaymentHandler) RetryGrant(c *gin.Context) {
	orderID := c.Param("order_id")
	out := h.orchestrator.RetryGrant(c.Request.Context(), orderID)
	h.writeOutcome(c, orderID, out)
}

func (h *PaymentHandler) writeOutcome(c *gin.Context, orderID string, out entities.PaymentOutcome) {
	switch out.Status {
	case entities.OutcomeSuccess:
		log.Printf("[payment][handler] outcome success order_id=%s tokens=%d", orderID, out.Granted)
		c.JSON(http.StatusOK, response.FromSuccessOutcome(out))
	case entities.OutcomeRejected:
		status := rejectionStatus(out.Reason)
		log.Printf("[payment][handler] outcome rejected order_id=%s reason=%q stage=%s", orderID, out.Reason, out.Stage)
		c.JSON(status, response.FromRejectedOutcome(out, status))
	default:
		log.Printf("[payment][handler] outcome failed order_id=%s stage=%s err=%v", orderID, out.Stage, out.Err)
		writeError(c, mapUseCaseError(out.Err))
	}
}
