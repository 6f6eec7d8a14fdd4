package remote

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Speshl/gorrc_tx/internal/config"
	"github.com/Speshl/gorrc_tx/internal/models"
	"github.com/google/uuid"
	socketio "github.com/googollee/go-socket.io"
	"github.com/pion/webrtc/v3"
)

const (
	CommandChannelName = "command"
	GatherTimeout      = 5 * time.Second
)

// Link drives a gorrc car over the internet: it offers a webrtc peer
// connection through the socket.io server and streams the channel values on
// the command data channel.
type Link struct {
	cfg config.RemoteConfig
	id  uuid.UUID

	client         *socketio.Client
	peerConnection *webrtc.PeerConnection

	lock    sync.RWMutex
	command *webrtc.DataChannel
	open    bool

	carInfo   models.Car
	trackInfo models.Track
}

func NewLink(cfg config.RemoteConfig) *Link {
	id, err := uuid.Parse(cfg.TransmitterID)
	if err != nil {
		id = uuid.New()
	}
	return &Link{
		cfg: cfg,
		id:  id,
	}
}

func (l *Link) Init() error {
	socketURI := fmt.Sprintf("http://%s", l.cfg.Server)
	client, err := socketio.NewClient(socketURI, nil)
	if err != nil {
		return fmt.Errorf("error creating client - %w", err)
	}
	l.client = client

	log.Println("registering handlers")
	l.client.OnEvent("reply", func(s socketio.Conn, msg string) {
		log.Println("Receive Message /reply: ", "reply", msg)
	})
	l.client.OnEvent("answer", l.onAnswer)
	l.client.OnEvent("register_success", l.onRegisterSuccess)

	log.Println("attemping to connect to server...")
	err = l.client.Connect() //Client must have atleast 1 event handler to work
	if err != nil {
		return fmt.Errorf("error connecting to server - %w", err)
	}
	log.Println("connected to server")

	encodedMsg, err := encode(models.ConnectReq{
		Key:           l.cfg.Key,
		Password:      l.cfg.Password,
		TransmitterId: l.id,
	})
	if err != nil {
		return fmt.Errorf("failed encoding connect request: %w", err)
	}
	l.client.Emit("transmitter_connect", encodedMsg)

	return l.sendOffer()
}

func (l *Link) sendOffer() error {
	peerConnection, err := webrtc.NewPeerConnection(webrtc.Configuration{
		ICEServers: []webrtc.ICEServer{
			{URLs: []string{"stun:stun.l.google.com:19302"}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed creating peer connection: %w", err)
	}
	l.peerConnection = peerConnection
	l.peerConnection.OnICEConnectionStateChange(func(state webrtc.ICEConnectionState) {
		log.Printf("Connection State has changed: %s\n", state.String())
	})

	command, err := l.peerConnection.CreateDataChannel(CommandChannelName, nil)
	if err != nil {
		return fmt.Errorf("failed creating command channel: %w", err)
	}
	command.OnOpen(func() {
		log.Printf("data channel open: %s\n", command.Label())
		l.lock.Lock()
		defer l.lock.Unlock()
		l.open = true
	})
	command.OnClose(func() {
		log.Printf("data channel closed: %s\n", command.Label())
		l.lock.Lock()
		defer l.lock.Unlock()
		l.open = false
	})
	l.command = command

	offer, err := l.peerConnection.CreateOffer(nil)
	if err != nil {
		return fmt.Errorf("failed creating offer: %w", err)
	}

	gatherComplete := webrtc.GatheringCompletePromise(l.peerConnection)
	err = l.peerConnection.SetLocalDescription(offer)
	if err != nil {
		return fmt.Errorf("failed to set local description: %w", err)
	}

	// no trickle ice, the offer goes out once gathering is done
	select {
	case <-gatherComplete:
	case <-time.After(GatherTimeout):
		log.Println("warning: ice gathering timed out, sending partial offer")
	}

	encodedOffer, err := encode(models.Offer{
		Offer:        *l.peerConnection.LocalDescription(),
		CarShortName: l.cfg.CarName,
		SeatNumber:   l.cfg.SeatNumber,
		UserId:       l.id,
	})
	if err != nil {
		return fmt.Errorf("failed encoding offer: %w", err)
	}
	log.Println("sending offer")
	l.client.Emit("offer", encodedOffer)
	return nil
}

func (l *Link) onAnswer(socketConn socketio.Conn, msg string) {
	answer := models.Answer{}
	err := decode(msg, &answer)
	if err != nil {
		log.Printf("answer from %s failed unmarshaling: %s\n", socketConn.ID(), err.Error())
		return
	}
	if answer.Answer == nil {
		log.Println("answer without session description")
		return
	}
	if answer.SeatNumber != l.cfg.SeatNumber {
		log.Printf("answer was for seat %d, expected %d\n", answer.SeatNumber, l.cfg.SeatNumber)
		return
	}

	err = l.peerConnection.SetRemoteDescription(*answer.Answer)
	if err != nil {
		log.Printf("failed to set remote description: %s\n", err)
	}
}

func (l *Link) onRegisterSuccess(socketConn socketio.Conn, msg string) {
	decodedMsg := models.ConnectResp{}
	err := decode(msg, &decodedMsg)
	if err != nil {
		log.Printf("register success from %s failed unmarshaling: %s\n", socketConn.ID(), msg)
		return
	}
	l.lock.Lock()
	defer l.lock.Unlock()
	l.carInfo = decodedMsg.Car
	l.trackInfo = decodedMsg.Track
	log.Printf("transmitter connected to %s(%s) @ %s(%s)\n", l.carInfo.Name, l.carInfo.ShortName, l.trackInfo.Name, l.trackInfo.ShortName)
}

// SetMany sends the frame once the command channel is open, frames before that are dropped.
func (l *Link) SetMany(values []float64) error {
	l.lock.RLock()
	open := l.open
	l.lock.RUnlock()
	if !open {
		return nil
	}

	data, err := EncodeState(values, time.Now())
	if err != nil {
		return err
	}
	err = l.command.Send(data)
	if err != nil {
		return fmt.Errorf("failed sending command: %w", err)
	}
	return nil
}

func (l *Link) Stop() error {
	log.Println("stopping remote link")
	if l.peerConnection != nil {
		err := l.peerConnection.Close()
		if err != nil {
			log.Printf("error: failed closing peer connection: %s\n", err.Error())
		}
	}
	if l.client != nil {
		return l.client.Close()
	}
	return nil
}

// EncodeState builds the command channel message.
func EncodeState(values []float64, now time.Time) ([]byte, error) {
	data, err := json.Marshal(models.ControlState{
		Axes:      values,
		TimeStamp: now.UnixMilli(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed encoding control state: %w", err)
	}
	return data, nil
}

func encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decode(msg string, v any) error {
	return json.Unmarshal([]byte(msg), v)
}
