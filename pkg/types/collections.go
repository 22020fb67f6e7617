package types

// Standard collection names opened by mockapi.Open.
const (
	ServerCollection        = "Server"
	SubscriptionCollection  = "Subscription"
	PaymentCollection       = "Payment"
	SupportTicketCollection = "SupportTicket"
)

// StandardCollectionNames lists all standard collection names for enumeration.
var StandardCollectionNames = []string{
	ServerCollection,
	SubscriptionCollection,
	PaymentCollection,
	SupportTicketCollection,
}

// Medium key layout. Every collection lives under KeyPrefix+name and the
// session under SessionKey.
const (
	KeyPrefix  = "mock_"
	SessionKey = KeyPrefix + "user"
)

// CollectionKey returns the medium key holding the named collection.
func CollectionKey(name string) string {
	return KeyPrefix + name
}
