package utils

import (
	"encoding/json"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
)

// Diagnosis labels for malformed upstream output.
const (
	DiagnosisValid          = "valid"
	DiagnosisEmpty          = "empty"
	DiagnosisMarkdownFenced = "markdown_fenced"
	DiagnosisRepairable     = "repairable"
	DiagnosisUnrecoverable  = "unrecoverable"
)

// DiagnoseJSON classifies why raw failed to parse. It is for logs only:
// the repaired text is never returned to callers.
func DiagnoseJSON(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DiagnosisEmpty
	}
	if json.Valid([]byte(trimmed)) {
		return DiagnosisValid
	}
	if inner, ok := stripCodeFence(trimmed); ok && json.Valid([]byte(inner)) {
		return DiagnosisMarkdownFenced
	}
	if !strings.ContainsAny(trimmed, "{[") {
		return DiagnosisUnrecoverable
	}
	repaired, err := jsonrepair.RepairJSON(trimmed)
	if err == nil && json.Valid([]byte(repaired)) {
		return DiagnosisRepairable
	}
	return DiagnosisUnrecoverable
}

// stripCodeFence removes an outer ```json ... ``` wrapper.
func stripCodeFence(s string) (string, bool) {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s, false
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	inner = strings.TrimPrefix(inner, "json")
	return strings.TrimSpace(inner), true
}
