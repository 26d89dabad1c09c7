package http

// Request and response shapes for the REST API. These are transport DTOs,
// decoupled from both the domain aggregates and the query read models.

// ErrorResponse is the uniform error body returned by every endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderItemRequest is one line item of an order intake request.
type OrderItemRequest struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// CreateOrderRequest is the order intake payload.
type CreateOrderRequest struct {
	CustomerName    string             `json:"customerName"`
	CustomerPhone   string             `json:"customerPhone"`
	CustomerAddress string             `json:"customerAddress"`
	Area            string             `json:"area"`
	Items           []OrderItemRequest `json:"items"`
	ScheduledFor    string             `json:"scheduledFor"`
}

// CreateOrderResponse confirms intake with the generated identifiers.
type CreateOrderResponse struct {
	ID          string `json:"id"`
	OrderNumber string `json:"orderNumber"`
}

// OrderResponse is one order in list responses.
type OrderResponse struct {
	ID            string  `json:"id"`
	OrderNumber   string  `json:"orderNumber"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	Area          string  `json:"area"`
	ScheduledFor  string  `json:"scheduledFor"`
	Status        string  `json:"status"`
	PartnerID     *string `json:"partnerId,omitempty"`
	TotalAmount   float64 `json:"totalAmount"`
}

// UpdateOrderStatusRequest carries the target lifecycle status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// PartnerRequest is the payload for creating or updating a partner.
// Status is ignored on create; new partners always start active.
type PartnerRequest struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Status     string   `json:"status,omitempty"`
	Areas      []string `json:"areas"`
	ShiftStart string   `json:"shiftStart"`
	ShiftEnd   string   `json:"shiftEnd"`
}

// CreatePartnerResponse confirms registration with the generated identifier.
type CreatePartnerResponse struct {
	ID string `json:"id"`
}

// PartnerResponse is one partner in list responses.
type PartnerResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Status          string   `json:"status"`
	CurrentLoad     int      `json:"currentLoad"`
	Areas           []string `json:"areas"`
	ShiftStart      string   `json:"shiftStart"`
	ShiftEnd        string   `json:"shiftEnd"`
	Rating          float64  `json:"rating"`
	CompletedOrders int64    `json:"completedOrders"`
	CancelledOrders int64    `json:"cancelledOrders"`
}

// EligiblePartnerResponse is one partner able to take an assignment.
type EligiblePartnerResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
	CurrentLoad int      `json:"currentLoad"`
	Areas       []string `json:"areas"`
	ShiftStart  string   `json:"shiftStart"`
	ShiftEnd    string   `json:"shiftEnd"`
}

// AssignOrderRequest asks for an assignment attempt. A missing partnerId
// selects the least loaded eligible partner automatically.
type AssignOrderRequest struct {
	OrderID   string  `json:"orderId"`
	PartnerID *string `json:"partnerId,omitempty"`
}

// AssignedPartnerResponse identifies the partner an order was matched with.
type AssignedPartnerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// AssignOrderResponse reports a successful assignment attempt.
type AssignOrderResponse struct {
	Order   OrderResponse           `json:"order"`
	Partner AssignedPartnerResponse `json:"partner"`
}

// BatchRunResponse summarizes one batch assignment sweep.
type BatchRunResponse struct {
	TotalProcessed int64            `json:"totalProcessed"`
	SuccessCount   int64            `json:"successCount"`
	FailureCount   int64            `json:"failureCount"`
	FailureReasons map[string]int64 `json:"failureReasons"`
}

// MetricsSummaryResponse is the stored assignment metrics record.
type MetricsSummaryResponse struct {
	TotalAssigned  int64                   `json:"totalAssigned"`
	SuccessRate    float64                 `json:"successRate"`
	AverageTime    float64                 `json:"averageTime"`
	FailureReasons []FailureReasonResponse `json:"failureReasons"`
}

// FailureReasonResponse is one bucket of the failure reason histogram.
type FailureReasonResponse struct {
	Reason string `json:"reason"`
	Count  int64  `json:"count"`
}

// AnalyticsResponse carries every analytics section.
type AnalyticsResponse struct {
	OrderStatus        OrderStatusResponse          `json:"orderStatus"`
	PartnerPerformance []PartnerPerformanceResponse `json:"partnerPerformance"`
	TopAreas           []AreaOrderCountResponse     `json:"topAreas"`
	DailyTrends        []DailyTrendResponse         `json:"dailyTrends"`
}

// OrderStatusResponse is the order count breakdown by lifecycle status.
type OrderStatusResponse struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Assigned  int64 `json:"assigned"`
	Picked    int64 `json:"picked"`
	Delivered int64 `json:"delivered"`
	Cancelled int64 `json:"cancelled"`
}

// PartnerPerformanceResponse is one active partner's delivery record.
type PartnerPerformanceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	CurrentLoad     int     `json:"currentLoad"`
	CompletedOrders int64   `json:"completedOrders"`
	CancelledOrders int64   `json:"cancelledOrders"`
	CompletionRate  float64 `json:"completionRate"`
}

// AreaOrderCountResponse is one bucket of the busiest-areas ranking.
type AreaOrderCountResponse struct {
	Area       string `json:"area"`
	OrderCount int64  `json:"orderCount"`
}

// DailyTrendResponse aggregates one UTC day of assignment attempts.
type DailyTrendResponse struct {
	Day         string  `json:"day"`
	Total       int64   `json:"total"`
	Success     int64   `json:"success"`
	Failed      int64   `json:"failed"`
	SuccessRate float64 `json:"successRate"`
}
