package main

import (
	"fmt"
	"os"
)

// @title AMA-IMPACT API
// @version 1.0
// @description Immigration case tracking for contract staff: beneficiaries, case groups, petitions, milestones, RFEs and todos.

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT or API key. Format: "Bearer {token}"

//go:generate swag init -g cmd/ama-impact/main.go -d ../.. -o ../../pkg/impact/docs --outputTypes go,json --parseDependency

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
