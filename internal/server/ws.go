package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	. "CastleWardrobe/internal/game"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Inbound message types.
const (
	msgSceneNext         = "scene:next"
	msgScenePrev         = "scene:prev"
	msgSceneGoto         = "scene:goto"
	msgCharacterClick    = "character:click"
	msgDialogueContinue  = "dialogue:continue"
	msgDialogueDismiss   = "dialogue:dismiss"
	msgWardrobeOpen      = "wardrobe:open"
	msgWardrobeClose     = "wardrobe:close"
	msgWardrobeCharacter = "wardrobe:character"
	msgWardrobeCategory  = "wardrobe:category"
	msgWardrobeToggle    = "wardrobe:toggle"
	msgWardrobeApply     = "wardrobe:apply"
	msgWardrobeRemove    = "wardrobe:remove"
	msgOverlayDismiss    = "overlay:dismiss"
)

// Outbound message types.
const (
	msgWelcome = "welcome"
	msgState   = "state"
	msgError   = "error"
)

const (
	formatJSON  = "json"
	formatProto = "proto"
	sendBuffer  = 16
)

var errUnknownMessage = errors.New("unknown message type")

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type liveConn struct {
	conn   *websocket.Conn
	format string
	send   chan outboundMessage
}

// queue hands a message to the writer goroutine.
func (lc *liveConn) queue(ctx context.Context, msg outboundMessage) bool {
	select {
	case lc.send <- msg:
		return true
	case <-ctx.Done():
		return false
	}
}

func (lc *liveConn) write(msg outboundMessage) error {
	if lc.format == formatProto {
		data, err := encodeProtoFrame(msg)
		if err != nil {
			return err
		}
		return lc.conn.WriteMessage(websocket.BinaryMessage, data)
	}
	return lc.conn.WriteJSON(msg)
}

func (a *App) serveWS(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	format := formatJSON
	if strings.EqualFold(query.Get("format"), formatProto) {
		format = formatProto
	}

	sess, err := a.Hub.GetSession(query.Get("session"))
	if err != nil {
		log.Printf("[ws] session: %v", err)
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	sess.Attach()
	defer sess.Detach()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}
	lc := &liveConn{
		conn:   conn,
		format: format,
		send:   make(chan outboundMessage, sendBuffer),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Single writer.
	go func() {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-lc.send:
				if err := lc.write(msg); err != nil {
					log.Printf("[ws] send %s error: %v", msg.Type, err)
					return
				}
			}
		}
	}()

	lc.queue(ctx, outboundMessage{Type: msgWelcome, Payload: welcomeDTO{Session: sess.ID, Presentation: a.Presentation}})
	lc.queue(ctx, outboundMessage{Type: msgState, Payload: toStateDTO(sess.View())})

	go func() {
		defer cancel()
		for {
			msgType, data, err := conn.ReadMessage()
			if err != nil {
				return
			}

			var inbound inboundMessage
			switch msgType {
			case websocket.BinaryMessage:
				inbound, err = decodeProtoFrame(data)
			case websocket.TextMessage:
				err = json.Unmarshal(data, &inbound)
			default:
				log.Printf("[ws] unsupported WebSocket message type %d", msgType)
				continue
			}
			if err != nil {
				log.Printf("[ws] invalid frame: %v", err)
				lc.queue(ctx, outboundMessage{Type: msgError, Payload: errorDTO{Message: err.Error()}})
				continue
			}

			sess.Touch()
			if err := a.handleMessage(ctx, sess, inbound); err != nil {
				log.Printf("[ws] session %s %s: %v", sess.ID, inbound.Type, err)
				lc.queue(ctx, outboundMessage{Type: msgError, Payload: errorDTO{Message: err.Error(), Request: inbound.Type}})
				if errors.Is(err, errUnknownMessage) {
					continue
				}
			}
			lc.queue(ctx, outboundMessage{Type: msgState, Payload: toStateDTO(sess.View())})
		}
	}()

	<-ctx.Done()
	conn.Close()
}

func (a *App) handleMessage(ctx context.Context, sess *Session, msg inboundMessage) (err error) {
	ctx, span := tracer.Start(ctx, "ws.message", trace.WithAttributes(attribute.String("ws.type", msg.Type)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, msg.Type)
		}
		span.End()
	}()

	switch msg.Type {
	case msgSceneNext:
		sess.NextScene(ctx)
	case msgScenePrev:
		sess.PreviousScene(ctx)
	case msgSceneGoto:
		var p sceneGotoDTO
		if err := decodePayload(msg, &p); err != nil {
			return err
		}
		return sess.GoToScene(ctx, p.SceneID)
	case msgCharacterClick:
		var p characterRefDTO
		if err := decodePayload(msg, &p); err != nil {
			return err
		}
		return sess.ClickCharacter(ctx, p.CharacterID)
	case msgDialogueContinue:
		return sess.ContinueDialogue(ctx)
	case msgDialogueDismiss:
		return sess.DismissDialogue(ctx)
	case msgWardrobeOpen:
		var p characterRefDTO
		if len(msg.Payload) > 0 {
			if err := decodePayload(msg, &p); err != nil {
				return err
			}
		}
		return sess.OpenWardrobe(p.CharacterID)
	case msgWardrobeClose:
		sess.CloseWardrobe()
	case msgWardrobeCharacter:
		var p characterRefDTO
		if err := decodePayload(msg, &p); err != nil {
			return err
		}
		return sess.SelectWardrobeCharacter(p.CharacterID)
	case msgWardrobeCategory:
		var p categoryRefDTO
		if err := decodePayload(msg, &p); err != nil {
			return err
		}
		return sess.SelectCategory(p.Category)
	case msgWardrobeToggle:
		var p outfitRefDTO
		if err := decodePayload(msg, &p); err != nil {
			return err
		}
		_, err := sess.ToggleOutfit(p.OutfitID)
		return err
	case msgWardrobeApply:
		return sess.ApplySelectedOutfit()
	case msgWardrobeRemove:
		return sess.RemoveOutfit()
	case msgOverlayDismiss:
		return sess.DismissOverlay(ctx)
	default:
		return fmt.Errorf("%w: %s", errUnknownMessage, msg.Type)
	}
	return nil
}

func decodePayload(msg inboundMessage, v any) error {
	if len(msg.Payload) == 0 {
		return fmt.Errorf("invalid %s payload: missing", msg.Type)
	}
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return fmt.Errorf("invalid %s payload: %w", msg.Type, err)
	}
	return nil
}
