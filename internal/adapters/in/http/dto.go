package http

import "time"

// Request bodies. Field rules are enforced by the echo-wired validator
// before any command is constructed.

type createOrderRequest struct {
	Zone          string  `json:"zone" validate:"required,max=16"`
	TotalAmount   float64 `json:"totalAmount" validate:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" validate:"required,oneof=COD ONLINE"`
}

type createCourierRequest struct {
	FullName string `json:"fullName" validate:"required,max=255"`
	Zone     string `json:"zone" validate:"required,max=16"`
}

type verifyCourierRequest struct {
	Approved *bool `json:"approved" validate:"required"`
}

type setAvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

type assignOrderRequest struct {
	CourierID string `json:"courierId" validate:"required,uuid"`
}

type updateOrderStatusRequest struct {
	CourierID string `json:"courierId" validate:"required,uuid"`
	Status    string `json:"status" validate:"required,oneof=PICKED_UP OUT_FOR_DELIVERY DELIVERED CANCELLED"`
}

// Response bodies.

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type createdResponse struct {
	ID string `json:"id"`
}

type heartbeatResponse struct {
	Refreshed bool `json:"refreshed"`
}

type orderStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type pendingOrderResponse struct {
	ID            string    `json:"id"`
	Zone          string    `json:"zone"`
	TotalAmount   float64   `json:"totalAmount"`
	PaymentMethod string    `json:"paymentMethod"`
	PlacedAt      time.Time `json:"placedAt"`
}

type assignedOrderResponse struct {
	ID             string    `json:"id"`
	Zone           string    `json:"zone"`
	Status         string    `json:"status"`
	TotalAmount    float64   `json:"totalAmount"`
	DeliveryFee    float64   `json:"deliveryFee"`
	CourierEarning float64   `json:"courierEarning"`
	PlacedAt       time.Time `json:"placedAt"`
	AssignedAt     time.Time `json:"assignedAt"`
}

type availableCourierResponse struct {
	ID       string    `json:"id"`
	FullName string    `json:"fullName"`
	LastSeen time.Time `json:"lastSeen"`
}

type courierStatsResponse struct {
	CompletedDeliveries int     `json:"completedDeliveries"`
	ActiveOrders        int     `json:"activeOrders"`
	TotalEarnings       float64 `json:"totalEarnings"`
	TodayEarnings       float64 `json:"todayEarnings"`
	WeekEarnings        float64 `json:"weekEarnings"`
	AverageEarning      float64 `json:"averageEarning"`
}

type courierDashboardResponse struct {
	ID                 string                  `json:"id"`
	FullName           string                  `json:"fullName"`
	Zone               string                  `json:"zone"`
	VerificationStatus string                  `json:"verificationStatus"`
	Available          bool                    `json:"available"`
	Stats              courierStatsResponse    `json:"stats"`
	ActiveOrders       []assignedOrderResponse `json:"activeOrders"`
	PendingInZone      []pendingOrderResponse  `json:"pendingInZone"`
}
