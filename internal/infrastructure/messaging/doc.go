// Package messaging publishes and consumes domain events over an AMQP topic exchange.
//
// Every event is routed by its Type. Consumers declare a durable queue, bind it to the
// configured routing key patterns and acknowledge deliveries manually.
package messaging
