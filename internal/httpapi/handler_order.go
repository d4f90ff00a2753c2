package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"toko-be/internal/logger"
	"toko-be/internal/order"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type placeOrderReq struct {
	Shipping struct {
		FullName   string `json:"full_name"`
		Address    string `json:"address"`
		City       string `json:"city"`
		PostalCode string `json:"postal_code"`
		Country    string `json:"country"`
	} `json:"shipping"`
	Payment struct {
		CardHolder string `json:"card_holder"`
		CardNumber string `json:"card_number"`
	} `json:"payment"`
}

func (s *Server) placeOrder(c *gin.Context) {
	var req placeOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	o, err := s.orders.PlaceOrder(c.Request.Context(), order.PlaceOrderInput{
		Shipping: order.ShippingSnapshot{
			FullName:   req.Shipping.FullName,
			Address:    req.Shipping.Address,
			City:       req.Shipping.City,
			PostalCode: req.Shipping.PostalCode,
			Country:    req.Shipping.Country,
		},
		CardHolder: req.Payment.CardHolder,
		CardNumber: req.Payment.CardNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (s *Server) listOwnOrders(c *gin.Context) {
	filter, sort, page, limit, err := parseOrderQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orders, err := s.orders.GetOrders(c.Request.Context(), filter, sort, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if orders == nil {
		orders = []*order.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (s *Server) getOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	o, err := s.orders.GetDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (s *Server) listAllOrders(c *gin.Context) {
	filter, sort, page, limit, err := parseOrderQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orders, err := s.orders.GetOrders(c.Request.Context(), filter, sort, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if orders == nil {
		orders = []*order.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (s *Server) listUserOrders(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	filter, sort, page, limit, err := parseOrderQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	filter.UserID = &userID

	orders, err := s.orders.GetOrders(c.Request.Context(), filter, sort, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if orders == nil {
		orders = []*order.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

type advanceStatusReq struct {
	Status string `json:"status"`
}

func (s *Server) advanceOrderStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req advanceStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	o, err := s.orders.AdvanceStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	s.notifyStatusChange(c, o)

	c.JSON(http.StatusOK, o)
}

// notifyStatusChange emails the shopper about the new status. It is
// fire-and-forget; a lookup or delivery failure never affects the response.
func (s *Server) notifyStatusChange(c *gin.Context, o *order.Order) {
	if s.mailer == nil || s.users == nil {
		return
	}

	ctx := c.Request.Context()
	log := logger.FromCtx(ctx).With(zap.String("order_id", o.ID.String()))

	u, err := s.users.GetByID(ctx, o.UserID)
	if err != nil {
		log.Warn("status notification skipped", zap.Error(err))
		return
	}

	subject := fmt.Sprintf("Order %s is now %s", o.InvoiceNumber, o.Status)
	body := fmt.Sprintf("Your order %s was updated to %s.", o.InvoiceNumber, o.Status)

	go func() {
		sendCtx, cancel := logger.DetachCtx(ctx, 10*time.Second)
		defer cancel()
		if err := s.mailer.Send(sendCtx, u.Email, subject, body); err != nil {
			log.Warn("failed to send status notification", zap.Error(err))
		}
	}()
}

func parseOrderQuery(c *gin.Context) (*order.FilterInput, *order.SortInput, int32, int32, error) {
	filter := &order.FilterInput{}

	if v := c.Query("status"); v != "" {
		status, ok := order.ParseStatus(v)
		if !ok {
			return nil, nil, 0, 0, fmt.Errorf("invalid status %q", v)
		}
		filter.Status = &status
	}
	if v := c.Query("search"); v != "" {
		filter.Search = &v
	}
	if v := c.Query("dateFrom"); v != "" {
		ts, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, nil, 0, 0, fmt.Errorf("invalid dateFrom %q", v)
		}
		filter.DateFrom = &ts
	}
	if v := c.Query("dateTo"); v != "" {
		ts, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, nil, 0, 0, fmt.Errorf("invalid dateTo %q", v)
		}
		filter.DateTo = &ts
	}

	var sort *order.SortInput
	if v := c.Query("sortBy"); v != "" {
		switch order.SortField(v) {
		case order.SortFieldCreatedAt, order.SortFieldTotal:
			sort = &order.SortInput{
				Field:     order.SortField(v),
				Direction: c.DefaultQuery("sortDir", "desc"),
			}
		default:
			return nil, nil, 0, 0, fmt.Errorf("invalid sortBy %q", v)
		}
	}

	page := int32(1)
	if v := c.Query("page"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 32)
		if err != nil || parsed < 1 {
			return nil, nil, 0, 0, fmt.Errorf("invalid page %q", v)
		}
		page = int32(parsed)
	}

	limit := int32(20)
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 32)
		if err != nil || parsed < 1 {
			return nil, nil, 0, 0, fmt.Errorf("invalid limit %q", v)
		}
		limit = int32(parsed)
	}

	return filter, sort, page, limit, nil
}
