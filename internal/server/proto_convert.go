package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Binary frames carry a google.protobuf.Struct with the same shape as the
// JSON envelope: {"type": "...", "payload": {...}}.

var errMissingType = errors.New("frame has no type")

// encodeProtoFrame converts an outbound message to a binary Struct frame.
func encodeProtoFrame(msg outboundMessage) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	var st structpb.Struct
	if err := protojson.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("json to struct: %w", err)
	}
	out, err := proto.Marshal(&st)
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}
	return out, nil
}

// decodeProtoFrame turns a binary Struct frame into the JSON envelope used by
// the text protocol.
func decodeProtoFrame(data []byte) (inboundMessage, error) {
	var st structpb.Struct
	if err := proto.Unmarshal(data, &st); err != nil {
		return inboundMessage{}, fmt.Errorf("protobuf unmarshal: %w", err)
	}
	fields := st.GetFields()
	msgType := fields["type"].GetStringValue()
	if msgType == "" {
		return inboundMessage{}, errMissingType
	}
	msg := inboundMessage{Type: msgType}
	if payload, ok := fields["payload"]; ok {
		raw, err := protojson.Marshal(payload)
		if err != nil {
			return inboundMessage{}, fmt.Errorf("payload to json: %w", err)
		}
		msg.Payload = raw
	}
	return msg, nil
}
