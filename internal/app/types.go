package app

import "alert-packet/internal/types"

type LoadRegistryRequest struct {
	SchemaRoot   string
	KeepNullable []string
}

type LoadRegistryResult struct {
	Versions []string
	IDs      []string
}

type SimulateRequest struct {
	SchemaRoot   string
	Version      string
	Count        int
	Seed         uint64
	KeepNullable []string
	SuppressNull []string
	ArrayCounts  map[string]int
	OutputPath   string
}

type SimulateResult struct {
	Version    string
	SchemaID   string
	Generated  int
	OutputPath string
}

type SyncRequest struct {
	SchemaRoot   string
	KeepNullable []string
	RegistryURL  string
	Subject      string
	Username     string
	Password     string
	TimeoutSec   int
	ReportPath   string
}

type SyncResult struct {
	Report types.SyncReport
}

type RoundTripRequest struct {
	SchemaRoot   string
	Version      string
	KeepNullable []string
	PacketPath   string
}

type RoundTripResult struct {
	Result types.RoundTripResult
}
