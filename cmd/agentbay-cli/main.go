// Package main is an interactive terminal client for the agentbay
// WebSocket chat.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/prajwalun/agentbay/internal/transport/ws"
)

// Client represents a WebSocket client.
type Client struct {
	conn           *websocket.Conn
	conversationID string
	done           chan struct{}
}

// NewClient creates a new client and connects to the server.
func NewClient(addr, apiKey string) (*Client, error) {
	header := http.Header{}
	if apiKey != "" {
		header.Set("X-API-Key", apiKey)
	}
	conn, _, err := websocket.DefaultDialer.Dial(addr, header)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}

	return &Client{
		conn: conn,
		done: make(chan struct{}),
	}, nil
}

// Close closes the client connection.
func (c *Client) Close() error {
	close(c.done)
	return c.conn.Close()
}

// SendHello sends a hello message and waits for hello_ack.
func (c *Client) SendHello(apiKey, conversationID string) error {
	msg := ws.HelloMessage{
		BaseMessage: ws.BaseMessage{
			Type:           ws.TypeHello,
			Ts:             time.Now().UnixMilli(),
			ConversationID: conversationID,
		},
		APIKey: apiKey,
	}

	if err := c.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("write hello: %w", err)
	}

	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("read hello_ack: %w", err)
	}

	var base ws.BaseMessage
	if err := json.Unmarshal(data, &base); err != nil {
		return fmt.Errorf("unmarshal hello_ack: %w", err)
	}

	if base.Type == ws.TypeError {
		var errMsg ws.ErrorMessage
		json.Unmarshal(data, &errMsg)
		return fmt.Errorf("hello failed: %s - %s", errMsg.Code, errMsg.Message)
	}

	if base.Type != ws.TypeHelloAck {
		return fmt.Errorf("expected hello_ack, got: %s", base.Type)
	}

	var ack ws.HelloAckMessage
	if err := json.Unmarshal(data, &ack); err != nil {
		return fmt.Errorf("unmarshal hello_ack: %w", err)
	}
	c.conversationID = ack.ConversationID
	for _, m := range ack.Messages {
		fmt.Printf("\n%s\n", m.Content)
	}
	return nil
}

// Send writes one client message.
func (c *Client) Send(msgType string, fields map[string]interface{}) error {
	msg := map[string]interface{}{
		"type":       msgType,
		"ts":         time.Now().UnixMilli(),
		"request_id": fmt.Sprintf("req_%d", time.Now().UnixNano()),
	}
	for k, v := range fields {
		msg[k] = v
	}
	return c.conn.WriteJSON(msg)
}

// ReadMessages reads and prints messages from the server.
func (c *Client) ReadMessages() {
	for {
		select {
		case <-c.done:
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					log.Printf("Read error: %v", err)
				}
				return
			}
			printMessage(data)
		}
	}
}

func printMessage(data []byte) {
	var base ws.BaseMessage
	if err := json.Unmarshal(data, &base); err != nil {
		log.Printf("Unmarshal error: %v", err)
		return
	}

	switch base.Type {
	case ws.TypeReply:
		var msg ws.ReplyMessage
		json.Unmarshal(data, &msg)
		fmt.Printf("\n[%s] %s\n> ", msg.AgentName, msg.Message.Content)
	case ws.TypeNotification:
		var msg ws.NotificationMessage
		json.Unmarshal(data, &msg)
		fmt.Printf("\n* %s: %s\n", msg.Title, msg.Description)
	case ws.TypeContext:
		var msg ws.ContextMessage
		json.Unmarshal(data, &msg)
		fmt.Printf("\nContext: %s\n> ", msg.Summary)
	case ws.TypeChatReset:
		var msg ws.ChatResetMessage
		json.Unmarshal(data, &msg)
		if msg.Closed {
			fmt.Println("\nChat closed. Restart the client to begin again.")
			return
		}
		for _, m := range msg.Messages {
			fmt.Printf("\n%s: %s\n", m.Role, m.Content)
		}
		fmt.Print("> ")
	case ws.TypeError:
		var msg ws.ErrorMessage
		json.Unmarshal(data, &msg)
		fmt.Printf("\nError (%s): %s\n> ", msg.Code, msg.Message)
	default:
		var pretty map[string]interface{}
		json.Unmarshal(data, &pretty)
		formatted, _ := json.MarshalIndent(pretty, "", "  ")
		fmt.Printf("\n[%s] Received:\n%s\n", base.Type, string(formatted))
	}
}

func main() {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket server address")
	apiKey := flag.String("api-key", "", "API key for authentication")
	conversationID := flag.String("conversation", "", "Resume an existing conversation")
	flag.Parse()

	log.SetFlags(log.Ltime)

	fmt.Printf("Connecting to %s...\n", *addr)

	client, err := NewClient(*addr, *apiKey)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer client.Close()

	if err := client.SendHello(*apiKey, *conversationID); err != nil {
		log.Fatalf("Hello failed: %v", err)
	}

	fmt.Printf("\nConversation: %s\n", client.conversationID)
	fmt.Println("Commands: /new, /load <session_id>, /context, /close, /quit")

	go client.ReadMessages()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		select {
		case <-interrupt:
			fmt.Println("\nInterrupted")
			return
		default:
			if !scanner.Scan() {
				return
			}

			input := strings.TrimSpace(scanner.Text())
			if input == "" {
				continue
			}

			var sendErr error
			switch {
			case input == "/quit":
				fmt.Println("Bye!")
				return
			case input == "/new":
				sendErr = client.Send(ws.TypeNewChat, nil)
			case input == "/close":
				sendErr = client.Send(ws.TypeCloseChat, nil)
			case input == "/context":
				sendErr = client.Send(ws.TypeGetContext, nil)
			case strings.HasPrefix(input, "/load "):
				sendErr = client.Send(ws.TypeLoadSession, map[string]interface{}{
					"session_id": strings.TrimSpace(strings.TrimPrefix(input, "/load ")),
				})
			default:
				sendErr = client.Send(ws.TypeUserMessage, map[string]interface{}{"content": input})
			}
			if sendErr != nil {
				log.Printf("Send error: %v", sendErr)
			}
		}
	}
}
