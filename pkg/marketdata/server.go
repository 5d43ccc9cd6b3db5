package marketdata

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/ticklane/matchcore-engine/pkg/idgen"
	"github.com/ticklane/matchcore-engine/pkg/matchcore"
)

// Sink receives the outcome of each order-entry request (admission or
// rejection, resulting trades, cancellation) so the caller can journal and
// instrument them without Server knowing about either concern.
type Sink interface {
	RecordTrades(trades matchcore.Trades) error
	RecordAdmitted()
	RecordRejected()
	RecordCancelled()
}

// Server exposes a matchcore.Book over REST and WebSocket.
type Server struct {
	book   *matchcore.Book
	router *mux.Router
	hub    *hub
	log    *zap.SugaredLogger
	sink   Sink
}

// NewServer builds a Server around book. sink may be nil, in which case
// accepted mutations are neither journaled nor counted.
func NewServer(book *matchcore.Book, log *zap.SugaredLogger, sink Sink) *Server {
	s := &Server{
		book:   book,
		router: mux.NewRouter(),
		hub:    newHub(log),
		log:    log,
		sink:   sink,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/orderbook", s.handleGetOrderbook).Methods("GET")
	s.router.HandleFunc("/orders", s.handlePlaceOrder).Methods("POST")
	s.router.HandleFunc("/orders/cancel", s.handleCancelOrder).Methods("POST")
	s.router.HandleFunc("/orders/modify", s.handleModifyOrder).Methods("POST")
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// RunHub runs the WebSocket fan-out loop. It never returns; run it in its
// own goroutine alongside the HTTP server serving Handler().
func (s *Server) RunHub() {
	s.hub.run()
}

// Handler returns the CORS-wrapped router without starting a listener, for
// callers that manage their own *http.Server (needed for graceful
// shutdown).
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: false,
	})
	return c.Handler(s.router)
}

func (s *Server) handleGetOrderbook(w http.ResponseWriter, r *http.Request) {
	infos := s.book.GetOrderInfos()

	snapshot := OrderbookSnapshot{
		Bids:      toPriceLevels(infos.Bids),
		Asks:      toPriceLevels(infos.Asks),
		Timestamp: time.Now().UnixMilli(),
	}
	respondJSON(w, snapshot)
}

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	side, err := parseSide(req.Side)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	orderType, err := parseOrderType(req.Type)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var order *matchcore.Order
	if orderType == matchcore.Market {
		order = matchcore.NewMarketOrder(matchcore.OrderId(req.Id), side, matchcore.Quantity(req.Quantity))
	} else {
		order = matchcore.NewOrder(orderType, matchcore.OrderId(req.Id), side, matchcore.Price(req.Price), matchcore.Quantity(req.Quantity))
	}

	existedBefore := s.book.Contains(order.Id)
	trades := s.book.AddOrder(order)
	admitted := !existedBefore && (order.IsFilled() || len(trades) > 0 || s.book.Contains(order.Id))
	s.recordAndBroadcast(trades, admitted)

	respondJSON(w, OrderActionResponse{
		RequestId: idgen.NewRequestId(),
		Trades:    toTradeMessages(trades),
	})
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	var req CancelOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	s.book.CancelOrder(matchcore.OrderId(req.Id))
	if s.sink != nil {
		s.sink.RecordCancelled()
	}
	s.broadcastSnapshot()

	respondJSON(w, map[string]string{"status": "cancelled"})
}

func (s *Server) handleModifyOrder(w http.ResponseWriter, r *http.Request) {
	var req ModifyOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	side, err := parseSide(req.Side)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := matchcore.OrderId(req.Id)
	trades := s.book.ModifyOrder(matchcore.OrderModify{
		Id:       id,
		Side:     side,
		Price:    matchcore.Price(req.Price),
		Quantity: matchcore.Quantity(req.Quantity),
	})
	admitted := len(trades) > 0 || s.book.Contains(id)
	s.recordAndBroadcast(trades, admitted)

	respondJSON(w, OrderActionResponse{
		RequestId: idgen.NewRequestId(),
		Trades:    toTradeMessages(trades),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"})
}

// recordAndBroadcast journals trades, updates counters and fans out the
// resulting trade messages and fresh book snapshot to WebSocket subscribers.
func (s *Server) recordAndBroadcast(trades matchcore.Trades, admitted bool) {
	if s.sink != nil {
		if admitted {
			s.sink.RecordAdmitted()
		} else {
			s.sink.RecordRejected()
		}
		if len(trades) > 0 {
			if err := s.sink.RecordTrades(trades); err != nil {
				s.log.Warnw("journal_record_trades_failed", "err", err)
			}
		}
	}

	now := time.Now().UnixMilli()
	for _, msg := range toTradeMessages(trades) {
		msg.Timestamp = now
		s.hub.broadcastJSON(msg)
	}
	s.broadcastSnapshot()
}

func (s *Server) broadcastSnapshot() {
	infos := s.book.GetOrderInfos()
	s.hub.broadcastJSON(OrderbookSnapshot{
		Bids:      toPriceLevels(infos.Bids),
		Asks:      toPriceLevels(infos.Asks),
		Timestamp: time.Now().UnixMilli(),
	})
}

func toPriceLevels(levels []matchcore.LevelInfo) []PriceLevel {
	out := make([]PriceLevel, len(levels))
	for i, l := range levels {
		out[i] = PriceLevel{Price: int32(l.Price), Quantity: uint32(l.Quantity)}
	}
	return out
}

func toTradeMessages(trades matchcore.Trades) []TradeMessage {
	out := make([]TradeMessage, len(trades))
	for i, t := range trades {
		out[i] = TradeMessage{
			BidOrderId: uint64(t.Bid.OrderId),
			AskOrderId: uint64(t.Ask.OrderId),
			BidPrice:   int32(t.Bid.Price),
			AskPrice:   int32(t.Ask.Price),
			Quantity:   uint32(t.Bid.Quantity),
		}
	}
	return out
}

func parseSide(s string) (matchcore.Side, error) {
	switch strings.ToLower(s) {
	case "buy":
		return matchcore.Buy, nil
	case "sell":
		return matchcore.Sell, nil
	default:
		return 0, fmt.Errorf("unknown side %q", s)
	}
}

func parseOrderType(s string) (matchcore.OrderType, error) {
	switch strings.ToUpper(s) {
	case "GTC":
		return matchcore.GoodTillCancel, nil
	case "FAK":
		return matchcore.FillAndKill, nil
	case "FOK":
		return matchcore.FillOrKill, nil
	case "GFD":
		return matchcore.GoodForDay, nil
	case "MARKET":
		return matchcore.Market, nil
	default:
		return 0, fmt.Errorf("unknown order type %q", s)
	}
}

func respondJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
