package api

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/youruser/decksim/internal/cards"
	"github.com/youruser/decksim/internal/deck"
	imagepkg "github.com/youruser/decksim/internal/image"
	"github.com/youruser/decksim/internal/session"
	"github.com/youruser/decksim/internal/sim"
)

const maxTrials = 200000

// Handlers serves the simulator, deck list and catalog endpoints.
type Handlers struct {
	store   *session.Store
	catalog *cards.Catalog
	fetch   func(url string) (image.Image, error)
}

func NewHandlers(store *session.Store, catalog *cards.Catalog) *Handlers {
	if catalog == nil {
		catalog = cards.NewCatalog(nil)
	}
	return &Handlers{store: store, catalog: catalog, fetch: imagepkg.DownloadImage}
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, deck.ErrInvalidComposition), errors.Is(err, sim.ErrBadTrial):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrFull):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func fail(c *gin.Context, err error) {
	c.JSON(statusOf(err), gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// deckInput is the part of a request naming which cards to play with:
// either an explicit composition or a deck list in export format.
type deckInput struct {
	Cards     deck.Composition `json:"cards"`
	DeckText  string           `json:"deck_text"`
	HasLeader bool             `json:"has_leader"`
	Name      string           `json:"name"`
}

func (in deckInput) resolve() (deck.Deck, deck.Composition, error) {
	if in.DeckText != "" {
		d, comp, err := deck.ParseDeckText(in.DeckText, in.HasLeader)
		if err != nil {
			return deck.Deck{}, nil, err
		}
		if in.Name != "" {
			d.Name = in.Name
		}
		return d, comp, nil
	}
	return deck.FromComposition(in.Name, "", in.Cards), in.Cards, nil
}

func (h *Handlers) createSim(c *gin.Context) {
	var req struct {
		deckInput
		Seed *uint64 `json:"seed"`
		Draw int     `json:"draw"` // opening hand, dealt right away
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	d, comp, err := req.resolve()
	if err != nil {
		fail(c, err)
		return
	}
	info, err := h.store.Create(d, comp, req.Seed)
	if err != nil {
		fail(c, err)
		return
	}
	drawn := []string{}
	if req.Draw > 0 {
		if drawn, info, err = h.store.Draw(info.ID, req.Draw); err != nil {
			fail(c, err)
			return
		}
	}
	c.JSON(http.StatusCreated, gin.H{"sim": info, "drawn": drawn, "missing": h.catalog.Missing(comp)})
}

func (h *Handlers) getSim(c *gin.Context) {
	info, err := h.store.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *Handlers) drawSim(c *gin.Context) {
	var req struct {
		N int `json:"n"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.N < 0 {
		badRequest(c, errors.New("n must not be negative"))
		return
	}
	drawn, info, err := h.store.Draw(c.Param("id"), req.N)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drawn": drawn, "sim": info})
}

func (h *Handlers) deleteSim(c *gin.Context) {
	if err := h.store.Delete(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) probability(c *gin.Context) {
	var req struct {
		deckInput
		sim.Trial
		Seed *uint64 `json:"seed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Trials > maxTrials {
		badRequest(c, errors.New("trials must be at most "+strconv.Itoa(maxTrials)))
		return
	}
	_, comp, err := req.resolve()
	if err != nil {
		fail(c, err)
		return
	}
	var opts []sim.Option
	if req.Seed != nil {
		opts = append(opts, sim.WithSeed(*req.Seed))
	}
	est, err := sim.EstimateOpening(comp, req.Trial, opts...)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, est)
}

func (h *Handlers) parseDeck(c *gin.Context) {
	var req struct {
		Text      string `json:"text"`
		HasLeader bool   `json:"has_leader"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	d, comp, err := deck.ParseDeckText(req.Text, req.HasLeader)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"deck":        d,
		"composition": comp,
		"total":       comp.Total(),
		"missing":     h.catalog.Missing(comp),
	})
}

func exportDeck(c *gin.Context) {
	var d deck.Deck
	if err := c.ShouldBindJSON(&d); err != nil {
		badRequest(c, err)
		return
	}
	if err := d.Composition().Validate(); err != nil {
		fail(c, err)
		return
	}
	c.String(http.StatusOK, deck.ExportDeckText(d))
}

func (h *Handlers) filter(c *gin.Context) {
	var opt cards.FilterOptions
	if err := c.ShouldBindJSON(&opt); err != nil {
		badRequest(c, err)
		return
	}
	out := cards.Filter(h.catalog.All(), opt)
	c.JSON(http.StatusOK, gin.H{"count": len(out), "cards": out})
}

// qr endpoint returns a PNG of a QR for "text" query param
func qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		badRequest(c, errors.New("text is required"))
		return
	}
	size := 400
	if s := c.Query("size"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			badRequest(c, err)
			return
		}
		size = v
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

// handImage renders the current hand using catalog artwork. Cards without
// artwork, or whose download fails, become placeholders. ?qr=1 adds a QR of
// the full deck list.
func (h *Handlers) handImage(c *gin.Context) {
	info, err := h.store.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	var leaderImg image.Image
	if info.Leader != "" {
		leaderImg = h.artwork(info.Leader)
	}
	hand := info.Hand
	if len(hand) > imagepkg.MaxHandCards {
		hand = hand[:imagepkg.MaxHandCards]
	}
	imgs := make([]image.Image, len(hand))
	cache := map[string]image.Image{}
	for i, id := range hand {
		img, ok := cache[id]
		if !ok {
			img = h.artwork(id)
			cache[id] = img
		}
		imgs[i] = img
	}
	var qrImg image.Image
	if c.Query("qr") == "1" {
		d := deck.FromComposition(info.Name, info.Leader, info.Original)
		if q, err := imagepkg.DeckQRImage(d, 400); err == nil {
			qrImg = q
		} else {
			log.Println("qr error:", err)
		}
	}

	out := imagepkg.ComposeHandImage(leaderImg, imgs, qrImg)
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, out); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (h *Handlers) artwork(id string) image.Image {
	card, ok := h.catalog.Lookup(id)
	if !ok || card.ImageURL == "" {
		return nil
	}
	img, err := h.fetch(card.ImageURL)
	if err != nil {
		log.Println("image download error:", id, err)
		return nil
	}
	return img
}
