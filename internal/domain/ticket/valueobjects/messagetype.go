package valueobjects

import "fmt"

// MessageType distinguishes text notes from image references.
type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
)

func (mt MessageType) String() string {
	return string(mt)
}

func (mt MessageType) IsValid() bool {
	return mt == MessageTypeText || mt == MessageTypeImage
}

func (mt MessageType) IsImage() bool {
	return mt == MessageTypeImage
}

func NewMessageType(s string) (MessageType, error) {
	mt := MessageType(s)
	if !mt.IsValid() {
		return "", fmt.Errorf("invalid message type: %s", s)
	}
	return mt, nil
}
