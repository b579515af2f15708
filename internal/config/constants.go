package config

import "time"

// VinuChain deployment addresses. Each can be overridden in config.toml.
const (
	FactoryAddress       = "0xAAbe8531d02C2b1c1FCaa954E2E38D6bA1A6e0f7" // token factory: createToken + creationFee
	WrappedNativeAddress = "0xEd8c5530a0A086a12f57275728128a60DFf04230" // WVC
)

// Gas and fee defaults for the createToken call.
const (
	GasLimitCreateToken = uint64(3_000_000)
	FallbackCreationFee = "10000" // VC, used when creationFee() cannot be read
)

// Timeout constants used across cmd.
const (
	RPCSelectTimeout    = 10 * time.Second // endpoint benchmark before a connect
	RPCBenchmarkTimeout = 15 * time.Second // rpc benchmark command
	RPCHealthTimeout    = 8 * time.Second  // rpc add probe
)
