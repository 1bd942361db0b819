package constants

const (
	DefaultConsultingExchange    = "consulting_exchange"
	RoutingKeyConsultingRequests = "consulting.requests"
)
