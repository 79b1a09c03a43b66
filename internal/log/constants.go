package log

const (
	KeyAppName         = "app"
	KeyTag             = "tag"
	KeyProcess         = "process"
	KeyConfig          = "config"
	KeyRequestID       = "requestId"
	KeyRequestMethod   = "requestMethod"
	KeyRequestURL      = "requestURL"
	KeyStatusCode      = "statusCode"
	KeyEntity          = "entity"
	KeyEntityID        = "entityId"
	KeyEmail           = "email"
	KeyActivityID      = "activityId"
	KeyCategoryID      = "categoryId"
	KeyCartItemID      = "cartItemId"
	KeyCartCount       = "cartCount"
	KeyQuantity        = "quantity"
	KeySelectedCount   = "selectedCount"
	KeyPaymentMethodID = "paymentMethodId"
	KeyTransactionID   = "transactionId"
	KeyTokenPath       = "tokenPath"
	KeySearchTerm      = "searchTerm"
	KeyPage            = "page"
)
