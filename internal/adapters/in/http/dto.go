package http

import (
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/order"
)

type ProductRef struct {
	ID       string   `json:"_id"`
	Name     string   `json:"name"`
	Image    []string `json:"image"`
	Price    float64  `json:"price"`
	Discount float64  `json:"discount"`
}

type ListItem struct {
	Product  ProductRef `json:"productId"`
	Quantity int        `json:"quantity"`
}

type PlaceOrderRequest struct {
	ListItems []ListItem `json:"list_items" validate:"required,min=1"`
	AddressID string     `json:"addressId" validate:"required"`
}

type CheckoutRequest struct {
	PlaceOrderRequest
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// confirming reports whether the client finished the payment widget.
func (r CheckoutRequest) confirming() bool {
	return r.RazorpayOrderID != "" || r.RazorpayPaymentID != "" || r.RazorpaySignature != ""
}

type CancelOrderRequest struct {
	OrderID            string `json:"orderId" validate:"required"`
	CancellationReason string `json:"cancellationReason" validate:"required"`
}

type UpdateTrackingRequest struct {
	OrderID        string `json:"orderId" validate:"required"`
	TrackingStatus string `json:"tracking_status" validate:"required"`
}

type TrackOrderRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

func lineItemInputs(items []ListItem) []commands.LineItemInput {
	inputs := make([]commands.LineItemInput, len(items))
	for i, item := range items {
		inputs[i] = commands.LineItemInput{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Images:    item.Product.Image,
			Price:     item.Product.Price,
			Discount:  item.Product.Discount,
			Quantity:  item.Quantity,
		}
	}
	return inputs
}

type ProductDetailsResponse struct {
	Name  string   `json:"name"`
	Image []string `json:"image"`
}

type TrackingEntryResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	UpdatedBy string    `json:"updatedBy"`
}

// orderFields are shared by both order representations.
type orderFields struct {
	ID                 string                  `json:"_id"`
	OrderID            string                  `json:"orderId"`
	GroupID            string                  `json:"groupId"`
	ProductDetails     ProductDetailsResponse  `json:"product_details"`
	Quantity           int                     `json:"quantity"`
	PaymentID          string                  `json:"paymentId"`
	PaymentStatus      string                  `json:"payment_status"`
	SubTotalAmt        float64                 `json:"subTotalAmt"`
	TotalAmt           float64                 `json:"totalAmt"`
	TrackingStatus     string                  `json:"tracking_status"`
	TrackingHistory    []TrackingEntryResponse `json:"tracking_history"`
	IsCancelled        bool                    `json:"isCancelled"`
	CancellationReason string                  `json:"cancellationReason"`
	CancellationDate   *time.Time              `json:"cancellationDate"`
	CreatedAt          time.Time               `json:"createdAt"`
	UpdatedAt          time.Time               `json:"updatedAt"`
}

// OrderResponse is an order as returned by the commands: references are ids.
type OrderResponse struct {
	orderFields
	UserID          string `json:"userId"`
	ProductID       string `json:"productId"`
	DeliveryAddress string `json:"delivery_address"`
	IsDeleted       bool   `json:"isDeleted"`
}

type UserResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ProductResponse struct {
	ID    string   `json:"_id"`
	Name  string   `json:"name"`
	Image []string `json:"image"`
}

type AddressResponse struct {
	ID          string `json:"_id"`
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
	Country     string `json:"country"`
	Mobile      string `json:"mobile"`
}

// OrderDetailsResponse is an order listing entry with its references resolved.
// A reference is null once the referenced record was removed.
type OrderDetailsResponse struct {
	orderFields
	User            *UserResponse    `json:"userId"`
	Product         *ProductResponse `json:"productId"`
	DeliveryAddress *AddressResponse `json:"delivery_address"`
}

type CheckoutQuoteResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Email    string `json:"email"`
}

type OrderStatsResponse struct {
	TotalUsers      int64 `json:"totalUsers"`
	TotalOrders     int64 `json:"totalOrders"`
	CanceledOrders  int64 `json:"canceledOrders"`
	DeliveredOrders int64 `json:"deliveredOrders"`
	ReceivedOrders  int64 `json:"receivedOrders"`
}

type TrackingResponse struct {
	OrderID         string                 `json:"orderId"`
	ProductDetails  ProductDetailsResponse `json:"product_details"`
	TrackingStatus  string                 `json:"tracking_status"`
	DeliveryAddress *AddressResponse       `json:"delivery_address"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

func toOrderResponse(o *order.Order) OrderResponse {
	history := o.History()
	entries := make([]TrackingEntryResponse, len(history))
	for i, e := range history {
		entries[i] = TrackingEntryResponse{
			Status:    e.Status().String(),
			Timestamp: e.At(),
			UpdatedBy: e.UpdatedBy().String(),
		}
	}

	return OrderResponse{
		orderFields: orderFields{
			ID:      o.ID().String(),
			OrderID: o.Number().String(),
			GroupID: o.GroupID().String(),
			ProductDetails: ProductDetailsResponse{
				Name:  o.Product().Name(),
				Image: nonNil(o.Product().Images()),
			},
			Quantity:           o.Quantity(),
			PaymentID:          o.Payment().Reference(),
			PaymentStatus:      o.Payment().Status().String(),
			SubTotalAmt:        o.SubTotal().Decimal().InexactFloat64(),
			TotalAmt:           o.Total().Decimal().InexactFloat64(),
			TrackingStatus:     o.Status().String(),
			TrackingHistory:    entries,
			IsCancelled:        o.IsCancelled(),
			CancellationReason: o.CancellationReason(),
			CancellationDate:   o.CancelledAt(),
			CreatedAt:          o.CreatedAt(),
			UpdatedAt:          o.UpdatedAt(),
		},
		UserID:          o.UserID().String(),
		ProductID:       o.Product().ID().String(),
		DeliveryAddress: o.AddressID().String(),
		IsDeleted:       o.IsDeleted(),
	}
}

func toOrderResponses(orders []*order.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = toOrderResponse(o)
	}
	return out
}

func toOrderDetailsResponses(views []queries.OrderView) []OrderDetailsResponse {
	out := make([]OrderDetailsResponse, len(views))
	for i, v := range views {
		entries := make([]TrackingEntryResponse, len(v.TrackingHistory))
		for j, e := range v.TrackingHistory {
			entries[j] = TrackingEntryResponse{
				Status:    e.Status,
				Timestamp: e.Timestamp,
				UpdatedBy: e.UpdatedBy.String(),
			}
		}

		resp := OrderDetailsResponse{
			orderFields: orderFields{
				ID:                 v.ID.String(),
				OrderID:            v.OrderID,
				GroupID:            v.GroupID.String(),
				ProductDetails:     ProductDetailsResponse{Name: v.ProductDetails.Name, Image: nonNil(v.ProductDetails.Images)},
				Quantity:           v.Quantity,
				PaymentID:          v.PaymentID,
				PaymentStatus:      v.PaymentStatus,
				SubTotalAmt:        v.SubTotal.InexactFloat64(),
				TotalAmt:           v.Total.InexactFloat64(),
				TrackingStatus:     v.TrackingStatus,
				TrackingHistory:    entries,
				IsCancelled:        v.IsCancelled,
				CancellationReason: v.CancellationReason,
				CancellationDate:   v.CancellationDate,
				CreatedAt:          v.CreatedAt,
				UpdatedAt:          v.UpdatedAt,
			},
			DeliveryAddress: toAddressResponse(v.DeliveryAddress),
		}
		if v.User != nil {
			resp.User = &UserResponse{ID: v.User.ID.String(), Name: v.User.Name, Email: v.User.Email}
		}
		if v.Product != nil {
			resp.Product = &ProductResponse{ID: v.Product.ID.String(), Name: v.Product.Name, Image: nonNil(v.Product.Images)}
		}
		out[i] = resp
	}
	return out
}

func toAddressResponse(a *queries.AddressView) *AddressResponse {
	if a == nil {
		return nil
	}
	return &AddressResponse{
		ID:          a.ID.String(),
		AddressLine: a.AddressLine,
		City:        a.City,
		State:       a.State,
		Pincode:     a.Pincode,
		Country:     a.Country,
		Mobile:      a.Mobile,
	}
}

func toTrackingResponse(v queries.TrackingView) TrackingResponse {
	return TrackingResponse{
		OrderID:         v.OrderID,
		ProductDetails:  ProductDetailsResponse{Name: v.ProductDetails.Name, Image: nonNil(v.ProductDetails.Images)},
		TrackingStatus:  v.TrackingStatus,
		DeliveryAddress: toAddressResponse(v.DeliveryAddress),
		UpdatedAt:       v.UpdatedAt,
	}
}

func nonNil(images []string) []string {
	if images == nil {
		return []string{}
	}
	return images
}

