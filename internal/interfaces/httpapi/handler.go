package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/battlelog/cr-tracker/internal/domain/friendship"
	"github.com/battlelog/cr-tracker/internal/domain/match"
	"github.com/battlelog/cr-tracker/internal/domain/player"
	"github.com/battlelog/cr-tracker/internal/usecase"
)

const serviceName = "cr-tracker"

type Handler struct {
	playerService   *usecase.PlayerService
	matchService    *usecase.MatchService
	friendService   *usecase.FriendService
	syncService     *usecase.SyncService
	bulkSyncService *usecase.BulkSyncService
	logger          *slog.Logger
	validator       *validator.Validate
}

func NewHandler(
	playerService *usecase.PlayerService,
	matchService *usecase.MatchService,
	friendService *usecase.FriendService,
	syncService *usecase.SyncService,
	bulkSyncService *usecase.BulkSyncService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		playerService:   playerService,
		matchService:    matchService,
		friendService:   friendService,
		syncService:     syncService,
		bulkSyncService: bulkSyncService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Root")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{
		"status":  "online",
		"service": serviceName,
	})
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeBody unmarshals and validates a JSON request body. Every failure is an
// invalid-input error so handlers can pass it straight to writeError.
func (h *Handler) decodeBody(r *http.Request, dst any) error {
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validator.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

type playerDTO struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	PlayerTag string    `json:"playerTag"`
	CreatedAt time.Time `json:"createdAt"`
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:        p.ID,
		Username:  p.Username,
		PlayerTag: p.Tag,
		CreatedAt: p.CreatedAt,
	}
}

type matchDTO struct {
	BattleKey    string    `json:"battleKey"`
	ParticipantA string    `json:"participantA"`
	ParticipantB string    `json:"participantB"`
	WinnerTag    string    `json:"winnerTag,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
	GameMode     string    `json:"gameMode"`
	CrownsA      int       `json:"crownsA"`
	CrownsB      int       `json:"crownsB"`
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		BattleKey:    m.BattleKey,
		ParticipantA: m.ParticipantA,
		ParticipantB: m.ParticipantB,
		WinnerTag:    m.WinnerTag,
		OccurredAt:   m.OccurredAt,
		GameMode:     m.GameMode,
		CrownsA:      m.CrownsA,
		CrownsB:      m.CrownsB,
	}
}

type friendshipDTO struct {
	ID        int64     `json:"id"`
	PlayerID1 int64     `json:"playerId1"`
	PlayerID2 int64     `json:"playerId2"`
	CreatedAt time.Time `json:"createdAt"`
}

func friendshipToDTO(f friendship.Friendship) friendshipDTO {
	return friendshipDTO{
		ID:        f.ID,
		PlayerID1: f.PlayerID1,
		PlayerID2: f.PlayerID2,
		CreatedAt: f.CreatedAt,
	}
}
