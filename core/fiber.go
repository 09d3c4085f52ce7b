package core

import (
	"errors"
	"fmt"

	"mmdrill/pkg/snapshot"
	"mmdrill/pkg/types"
	"mmdrill/pkg/utils"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

const mimeMsgpack = "application/x-msgpack"

var errSessionNotFound = errors.New("session not found")

type SessionRequest struct {
	Spot *float64 `json:"spot,omitempty" jsonschema:"description=underlying price; random in the configured range when omitted"`
	Seed *int64   `json:"seed,omitempty" jsonschema:"description=seed for scenario draws"`
}

type DealRequest struct {
	Spot *float64 `json:"spot,omitempty" jsonschema:"description=underlying price; random in the configured range when omitted"`
}

type QuoteRequest struct {
	Market string `json:"market" jsonschema:"description=bid@ask or bid-ask,example=2.80@3.20"`
}

func SetupFiberApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "mmdrill",
		ErrorHandler: errorHandler,
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"sessions": SessionCount()}})
	})
	app.Get("/schema/:name", getSchema)

	app.Post("/sessions", createSession)
	app.Delete("/sessions/:id", deleteSession)
	sessions := app.Group("/sessions/:id")
	sessions.Get("/board", getBoard)
	sessions.Get("/board/text", getBoardText)
	sessions.Put("/board/:strike/:column", putQuote)
	sessions.Get("/fair", getFair)
	sessions.Post("/deal", postDeal)
	sessions.Post("/bot", postBot)
	sessions.Post("/bot/quote", postBotQuote)
	sessions.Get("/orders", getOrders)

	return app
}

func ShutdownFiberApp(app *fiber.App) {
	_ = app.Shutdown()
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, errSessionNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, types.ErrInvalidMarket), errors.Is(err, types.ErrMissesFair):
		code = fiber.StatusUnprocessableEntity
	case errors.Is(err, types.ErrPrecondition), errors.Is(err, types.ErrExhausted):
		code = fiber.StatusBadRequest
	}
	if code == fiber.StatusInternalServerError {
		log.Errorf("%v %v: %v", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(fiber.Map{"success": false, "error": err.Error()})
}

// reply sends data as msgpack when the client asks for it and JSON otherwise.
func reply(c *fiber.Ctx, status int, data any) error {
	if c.Get(fiber.HeaderAccept) == mimeMsgpack {
		body, err := snapshot.Encode(data)
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, mimeMsgpack)
		return c.Status(status).Send(body)
	}
	return c.Status(status).JSON(fiber.Map{"success": true, "data": data})
}

func session(c *fiber.Ctx) (*Session, error) {
	s, exists := GetSession(c.Params("id"))
	if !exists {
		return nil, fmt.Errorf("%w: '%v'", errSessionNotFound, c.Params("id"))
	}
	return s, nil
}

func bind[T any](c *fiber.Ctx) (T, error) {
	var req T
	if len(c.Body()) == 0 {
		return req, nil
	}
	if err := c.BodyParser(&req); err != nil {
		return req, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("fail to parse body: %v", err))
	}
	return req, nil
}

func getSchema(c *fiber.Ctx) error {
	var schema any
	var err error
	switch c.Params("name") {
	case "session":
		schema, err = utils.GenerateSchema[SessionRequest]()
	case "deal":
		schema, err = utils.GenerateSchema[DealRequest]()
	case "quote":
		schema, err = utils.GenerateSchema[QuoteRequest]()
	default:
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("unknown schema '%v'", c.Params("name")))
	}
	if err != nil {
		return err
	}
	return c.JSON(schema)
}

func createSession(c *fiber.Ctx) error {
	req, err := bind[SessionRequest](c)
	if err != nil {
		return err
	}
	s, err := RegisterSession(req.Spot, req.Seed)
	if err != nil {
		return err
	}
	board, err := s.Board()
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"id": s.Id, "board": board},
	})
}

func deleteSession(c *fiber.Ctx) error {
	if !RemoveSession(c.Params("id")) {
		return fmt.Errorf("%w: '%v'", errSessionNotFound, c.Params("id"))
	}
	return c.JSON(fiber.Map{"success": true, "data": nil})
}

func getBoard(c *fiber.Ctx) error {
	s, err := session(c)
	if err != nil {
		return err
	}
	board, err := s.Board()
	if err != nil {
		return err
	}
	return reply(c, fiber.StatusOK, board)
}

func getBoardText(c *fiber.Ctx) error {
	s, err := session(c)
	if err != nil {
		return err
	}
	text, err := s.BoardText()
	if err != nil {
		return err
	}
	return c.SendString(text)
}

func getFair(c *fiber.Ctx) error {
	s, err := session(c)
	if err != nil {
		return err
	}
	fair, err := s.Fair()
	if err != nil {
		return err
	}
	return reply(c, fiber.StatusOK, fair)
}

func postDeal(c *fiber.Ctx) error {
	s, err := session(c)
	if err != nil {
		return err
	}
	req, err := bind[DealRequest](c)
	if err != nil {
		return err
	}
	if err := s.Deal(req.Spot); err != nil {
		return err
	}
	board, err := s.Board()
	if err != nil {
		return err
	}
	return reply(c, fiber.StatusOK, board)
}

func putQuote(c *fiber.Ctx) error {
	s, err := session(c)
	if err != nil {
		return err
	}
	strike, err := c.ParamsInt("strike")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("bad strike '%v'", c.Params("strike")))
	}
	col, err := types.ParseColumn(c.Params("column"))
	if err != nil {
		return err
	}
	req, err := bind[QuoteRequest](c)
	if err != nil {
		return err
	}
	m, err := utils.ParseMarket(req.Market)
	if err != nil {
		return err
	}
	if err := s.Quote(strike, col, m); err != nil {
		return err
	}
	return reply(c, fiber.StatusOK, snapshot.OfMarket(m))
}

func postBot(c *fiber.Ctx) error {
	s, err := session(c)
	if err != nil {
		return err
	}
	request, err := s.StartBot()
	if err != nil {
		return err
	}
	return reply(c, fiber.StatusCreated, fiber.Map{"request": request})
}

func postBotQuote(c *fiber.Ctx) error {
	s, err := session(c)
	if err != nil {
		return err
	}
	req, err := bind[QuoteRequest](c)
	if err != nil {
		return err
	}
	m, err := utils.ParseMarket(req.Market)
	if err != nil {
		return err
	}
	res, err := s.RespondBot(m)
	if err != nil {
		return err
	}
	return reply(c, fiber.StatusOK, snapshot.OfResult(res))
}

func getOrders(c *fiber.Ctx) error {
	s, err := session(c)
	if err != nil {
		return err
	}
	return reply(c, fiber.StatusOK, s.Orders())
}
