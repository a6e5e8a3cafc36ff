package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           Brokerage Advisor API
// @version         0.1.0
// @description     Investor risk profiling, strategy management, performance history, and backtests.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
