// Package discovery centralizes internal service-discovery conventions.
package discovery

import (
	"strconv"
	"strings"
)

const (
	// ServiceCourse is the course registry gRPC service identity.
	ServiceCourse = "course"
	// ServiceEnrollment is the enrollment coordinator gRPC service identity.
	ServiceEnrollment = "enrollment"
)

var grpcPorts = map[string]int{
	ServiceCourse:     8101,
	ServiceEnrollment: 8102,
}

// DefaultGRPCPort returns the conventional gRPC port for a service, or 0.
func DefaultGRPCPort(service string) int {
	return grpcPorts[strings.TrimSpace(service)]
}

// DefaultGRPCAddr returns the canonical in-network gRPC address for a service.
func DefaultGRPCAddr(service string) string {
	service = strings.TrimSpace(service)
	port, ok := grpcPorts[service]
	if !ok || port <= 0 {
		return ""
	}
	return service + ":" + strconv.Itoa(port)
}

// OrDefaultGRPCAddr returns value when set, otherwise the service convention.
func OrDefaultGRPCAddr(value, service string) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return value
	}
	return DefaultGRPCAddr(service)
}
