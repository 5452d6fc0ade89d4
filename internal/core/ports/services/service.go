package services

import "context"

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Exchange     ExchangeSvcFacade
	Terms        TermsSvcFacade
	Rate         RateSvcFacade
	Risk         RiskSvcFacade
	Customer     CustomerSvcFacade
	Verification VerificationSvcFacade
}

// ReplicationPublisher pushes serialized replication events onto the durable
// queue feeding the secondary store. Implemented by the Kafka producer; the
// outbox relay is its only caller.
type ReplicationPublisher interface {
	Publish(ctx context.Context, topic, key string, payload []byte) error
}
