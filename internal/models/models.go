package models

import (
	"github.com/google/uuid"
	"github.com/pion/webrtc/v3"
)

type ConnectReq struct {
	Key           string    `json:"key"`
	Password      string    `json:"password"`
	TransmitterId uuid.UUID `json:"transmitter_id"`
}

type ConnectResp struct {
	Car   Car
	Track Track
}

type Car struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ShortName string    `json:"short_name"`
	Type      string    `json:"type"`
}

type Track struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ShortName string    `json:"short_name"`
	Type      string    `json:"type"`
}

type Offer struct {
	Offer        webrtc.SessionDescription `json:"offer"`
	CarShortName string                    `json:"car_name"`
	SeatNumber   int                       `json:"seat_number"`
	UserId       uuid.UUID                 `json:"user_id"`
}

type Answer struct {
	Answer     *webrtc.SessionDescription `json:"answer"`
	SeatNumber int                        `json:"seat_number"`
}

// ControlState carries one frame of channel values, axes in [-1, 1].
type ControlState struct {
	Axes      []float64 `json:"axes"`
	BitButton uint32    `json:"bit_buttons"`
	TimeStamp int64     `json:"time_stamp"`
}
