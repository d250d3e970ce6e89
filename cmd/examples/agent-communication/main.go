// Copyright (C) 2025 SAGE-X Project
//
// This file is part of vestauth-go.
//
// vestauth-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// vestauth-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with vestauth-go.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"

	vestauth "github.com/vestauth/vestauth-go"
	"github.com/vestauth/vestauth-go/pkg/binary"
	"github.com/vestauth/vestauth-go/pkg/client"
	"github.com/vestauth/vestauth-go/pkg/jwk"
	"github.com/vestauth/vestauth-go/pkg/server"
)

// TaskRequest represents a task sent from an agent to a tool
type TaskRequest struct {
	TaskID      string `json:"task_id"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// TaskResponse represents the tool's answer
type TaskResponse struct {
	TaskID  string `json:"task_id"`
	Status  string `json:"status"`
	Agent   string `json:"agent"`
	Message string `json:"message"`
}

// This example signs a request as an agent and verifies it in a tool.
//
// It needs a working vestauth engine and an agent identity:
//
//	VESTAUTH_EXECUTABLE  engine path (default "vestauth" on PATH)
//	AGENT_UID            agent uid registered with vestauth
//	AGENT_JWK_FILE       file holding the agent's private JWK
func main() {
	fmt.Println("=== Agent-to-Tool Communication Example ===")
	fmt.Println()

	ctx := context.Background()

	uid := os.Getenv("AGENT_UID")
	keyFile := os.Getenv("AGENT_JWK_FILE")
	if uid == "" || keyFile == "" {
		log.Fatal("AGENT_UID and AGENT_JWK_FILE must be set")
	}

	// Step 1: Load the agent identity
	fmt.Println("Step 1: Loading agent key...")

	key, err := jwk.LoadPrivate(keyFile)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("  Agent uid: %s\n", uid)
	fmt.Printf("  Key id: %s\n\n", key.KeyID)

	vc := vestauth.New(binary.WithExecutable(os.Getenv("VESTAUTH_EXECUTABLE")))
	fmt.Printf("  Engine: %s\n\n", vc.Binary().Executable())

	// Step 2: Start the tool, protected by the verification middleware
	fmt.Println("Step 2: Starting tool server...")

	auth := server.NewAuthMiddlewareWithVerifier(vc.Tool())
	toolServer := httptest.NewServer(auth.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agentUID, _ := server.UIDFromContext(r.Context())
		fmt.Printf("  ✓ Signature verified, agent: %s\n", agentUID)

		body, _ := io.ReadAll(r.Body)
		var task TaskRequest
		if err := json.Unmarshal(body, &task); err != nil {
			http.Error(w, "bad task", http.StatusBadRequest)
			return
		}
		fmt.Printf("  ✓ Received task: %s (Priority: %s)\n\n", task.TaskID, task.Priority)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(TaskResponse{
			TaskID:  task.TaskID,
			Status:  "accepted",
			Agent:   agentUID,
			Message: "Task queued for processing",
		})
	})))
	defer toolServer.Close()

	fmt.Printf("  Tool listening at %s\n\n", toolServer.URL)

	// Step 3: The agent sends a signed task
	fmt.Println("Step 3: Agent sending a signed task...")

	taskJSON, _ := json.Marshal(TaskRequest{
		TaskID:      "task-12345",
		Type:        "data-processing",
		Description: "Process customer data for analytics",
		Priority:    "high",
	})

	agentClient := client.NewClient(uid, key, vc.Agent(), nil)
	resp, err := agentClient.Post(ctx, toolServer.URL+"/tasks", taskJSON)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	// Step 4: The agent reads the response
	fmt.Println("Step 4: Agent receiving response...")

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Fatalf("Request failed with status %d: %s", resp.StatusCode, body)
	}

	var taskResp TaskResponse
	if err := json.NewDecoder(resp.Body).Decode(&taskResp); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("  Response Status: %d %s\n", resp.StatusCode, http.StatusText(resp.StatusCode))
	fmt.Printf("  Task Status: %s\n", taskResp.Status)
	fmt.Printf("  Message: %s\n\n", taskResp.Message)

	fmt.Println("=== Communication Flow Summary ===")
	fmt.Println("  1. The agent asked vestauth for signature headers")
	fmt.Println("  2. The tool passed the headers to `vestauth tool verify`")
	fmt.Println("  3. The engine confirmed the agent's identity")
	fmt.Println()
	fmt.Println("=== Example completed successfully! ===")
}
