package events

// Topics emitted by the pricing and transaction flows.
const (
	TopicDiscountApplied = "discount.applied"
	TopicDiscountRemoved = "discount.removed"
	TopicSaleCompleted   = "sale.completed"
	TopicReturnCompleted = "return.completed"
	TopicCouponRedeemed  = "coupon.redeemed"
)
