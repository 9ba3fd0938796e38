// relaycheck exercises an upstream chat-completion endpoint from the command
// line: it sends a seeded conversation plus one user message and prints the
// resolved reply. Useful when pointing the concierge at a new endpoint.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	model "github.com/lumessence/concierge/internal/model/chat"
	"github.com/lumessence/concierge/internal/service/relay"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: no .env file loaded: %v", err)
	}

	endpoint := flag.String("endpoint", os.Getenv("UPSTREAM_URL"), "upstream endpoint URL")
	message := flag.String("message", "What's a good cleanser for dry skin?", "user message to send")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	flag.Parse()

	if *endpoint == "" {
		flag.Usage()
		log.Fatal("provide -endpoint or set UPSTREAM_URL")
	}

	conv := model.Seeded("relaycheck")
	conv.Messages = append(conv.Messages, model.Message{Role: model.RoleUser, Content: *message})

	client := relay.NewClient(*endpoint, *timeout)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	reply, err := client.Complete(ctx, conv.Messages)
	if err != nil {
		log.Fatalf("exchange failed: %v", err)
	}

	fmt.Println(reply)
}
