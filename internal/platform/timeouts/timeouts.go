// Package timeouts defines shared timeout constants used across services.
package timeouts

import "time"

// GRPCDial caps the wait time when dialing a gRPC peer.
const GRPCDial = 2 * time.Second

// RegistryCall caps one enrollment -> course registry round trip. A call that
// runs past it surfaces as an unavailable registry, never a partial success.
const RegistryCall = 2 * time.Second

// Shutdown limits how long a server waits for in-flight requests during
// graceful shutdown before forcing a stop.
const Shutdown = 5 * time.Second
