package http

import (
	"encoding/json"
	"log"
	"net/http"
)

type MessageResponse struct {
	Message string `json:"message"`
}

// SubmitOrderResponse echoes the order number and status so the caller can
// reference the attempt even when the transaction did not go through.
type SubmitOrderResponse struct {
	Message           string `json:"message"`
	OrderNumber       string `json:"orderNumber"`
	TransactionStatus string `json:"transactionStatus"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, MessageResponse{Message: message})
}
