// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/field-console/backend/config"
	"github.com/field-console/backend/internal/application/adapter"
	"github.com/field-console/backend/internal/infra/dependency"
	"github.com/field-console/backend/internal/integration/adapters"
	"github.com/field-console/backend/internal/integration/persistence"
	"github.com/field-console/backend/internal/integration/persistence/model"
	"github.com/field-console/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

var (
	suiteOnce    sync.Once
	testServer   *httptest.Server
	testDB       *mock.Db
	testRedis    *redis.Client
	tokenService adapter.TokenService
)

// startSuite boots one shared in-memory stack: sqlite for the database,
// miniredis for the summary cache, and the full router on a test server.
func startSuite() {
	suiteOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		_ = os.Setenv("ENV", "test")
		_ = os.Setenv("JWT_SECRET", testJWTSecret)

		cfg := config.Load()

		testDB = mock.NewDb("field_console", map[string]any{
			"collectors":     &model.CollectorModel{},
			"refresh_tokens": &model.RefreshTokenModel{},
			"members":        &model.MemberModel{},
			"transactions":   &model.CollectionRecordModel{},
			"product_sales":  &model.ProductSaleModel{},
			"sale_items":     &model.SaleItemModel{},
		})
		testRedis = mock.NewRedis()

		tokenRepo := persistence.NewTokenRepository(testDB.DbConn)
		tokenService = adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)

		injector := dependency.NewInjector(cfg, testDB.DbConn, testRedis)
		engine := injector.Router.Setup("test")
		testServer = httptest.NewServer(engine)
	})
}

// testContext holds the per-scenario state.
type testContext struct {
	uri      string
	client   *http.Client
	headers  map[string]string
	response *response

	accessToken  string
	refreshToken string

	currentCollectorID    uuid.UUID
	currentCollectorEmail string
	currentMemberID       uuid.UUID
	lastSaleID            string
	lastDistributionID    string
}

type response struct {
	status int
	body   any
	raw    []byte
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(startSuite)

	ctx.AfterSuite(func() {
		if testServer != nil {
			testServer.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	startSuite()

	test := &testContext{
		uri:    testServer.URL,
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Collector setup steps
	ctx.Given(`^a collector exists with email "([^"]*)" and password "([^"]*)"$`, test.aCollectorExistsWithEmailAndPassword)
	ctx.Given(`^the collector is logged in$`, test.theCollectorIsLoggedIn)

	// Member and sale setup steps
	ctx.Given(`^a member exists named "([^"]*)" with schedule "([^"]*)"$`, test.aMemberExistsNamedWithSchedule)
	ctx.Given(`^the member has a product sale "([^"]*)" totaling "([^"]*)" in (\d+) installments dated "([^"]*)"$`, test.theMemberHasAProductSale)
	ctx.Given(`^the member has a record of "([^"]*)" with note "([^"]*)" dated "([^"]*)"$`, test.theMemberHasARecord)
	ctx.Given(`^the member has an attributed payment of "([^"]*)" dated "([^"]*)"$`, test.theMemberHasAnAttributedPayment)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.refreshToken = ""
	t.currentCollectorID = uuid.Nil
	t.currentCollectorEmail = ""
	t.currentMemberID = uuid.Nil
	t.lastSaleID = ""
	t.lastDistributionID = ""

	if testDB != nil {
		_ = testDB.ClearDB()
	}
	if testRedis != nil {
		_ = mock.ClearRedis(testRedis)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	startSuite()
	return nil
}
