//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

type searchRequest struct {
	Jobs          int     `json:"jobs"`
	Runs          int     `json:"runs"`
	NumHeatCycles int     `json:"cycles"`
	LowHeat       float64 `json:"lowHeat"`
	HighHeat      float64 `json:"highHeat"`
	LowHeatIters  int     `json:"lowIters"`
	HighHeatIters int     `json:"highIters"`
	Seed          int64   `json:"seed"`
}

// toConfig fills unset fields from the defaults, so a request only has to
// name the knobs it wants to change.
func (r searchRequest) toConfig() Config {
	cfg := DefaultConfig()
	if r.Jobs > 0 {
		cfg.Jobs = r.Jobs
	}
	if r.Runs > 0 {
		cfg.Runs = r.Runs
	}
	if r.NumHeatCycles > 0 {
		cfg.NumHeatCycles = r.NumHeatCycles
	}
	if r.LowHeat > 0 {
		cfg.LowHeat = r.LowHeat
	}
	if r.HighHeat > 0 {
		cfg.HighHeat = r.HighHeat
	}
	if r.LowHeatIters > 0 {
		cfg.LowHeatIters = r.LowHeatIters
	}
	if r.HighHeatIters > 0 {
		cfg.HighHeatIters = r.HighHeatIters
	}
	cfg.Seed = r.Seed
	return cfg
}

func handler(_ context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(400, "invalid base64 body")
		}
		body = string(decoded)
	}

	var req searchRequest
	if body != "" {
		if err := json.Unmarshal([]byte(body), &req); err != nil {
			return errResp(400, "invalid JSON: "+err.Error())
		}
	}

	cfg := req.toConfig()
	if err := cfg.Validate(); err != nil {
		return errResp(400, err.Error())
	}

	res, err := Search(cfg, NewGateCostModel())
	if err != nil {
		return errResp(500, err.Error())
	}

	respJSON, _ := json.Marshal(buildOutput(cfg, res))
	return events.LambdaFunctionURLResponse{StatusCode: 200, Headers: jsonHeader, Body: string(respJSON)}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	lambda.Start(handler)
}
