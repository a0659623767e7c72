package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"recom/e2e/steps/common"
)

// RegisterSteps registers all step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	common.RegisterSteps(ctx, tc)

	ctx.Step(`^the catalog and interaction services are running$`, tc.servicesAreRunning)
	ctx.Step(`^the user service is unreachable$`, tc.userServiceIsUnreachable)
	ctx.Step(`^a user "([^"]*)" exists$`, tc.userExists)
	ctx.Step(`^a product "([^"]*)" exists in category "([^"]*)" priced "([^"]*)"$`, tc.productExists)

	ctx.Step(`^user "([^"]*)" records a "([^"]*)" of product "([^"]*)"$`, tc.recordInteraction)
	ctx.Step(`^user "([^"]*)" has recorded a "([^"]*)" of product "([^"]*)"$`, tc.hasRecordedInteraction)
	ctx.Step(`^user "([^"]*)" records a "([^"]*)" of product id (\d+)$`, tc.recordInteractionByID)
	ctx.Step(`^user "([^"]*)" should have (\d+) interactions?$`, tc.userShouldHaveInteractions)

	ctx.Step(`^I request recommendations for user "([^"]*)"$`, tc.requestRecommendations)
	ctx.Step(`^the recommendations should be "([^"]*)"$`, tc.recommendationsShouldBe)
}

func (tc *TestContext) servicesAreRunning(context.Context) error {
	if err := tc.StartCatalog(); err != nil {
		return err
	}
	return tc.StartInteractions(tc.CatalogURL()+"/users", tc.CatalogURL()+"/products")
}

func (tc *TestContext) userServiceIsUnreachable(context.Context) error {
	dead := httptest.NewServer(nil)
	deadURL := dead.URL
	dead.Close()
	return tc.StartInteractions(deadURL+"/users", tc.CatalogURL()+"/products")
}

func (tc *TestContext) userExists(_ context.Context, alias string) error {
	if err := tc.POSTCatalog("/users", map[string]any{"name": alias, "email": alias + "@example.com"}); err != nil {
		return err
	}
	return tc.rememberCreated(alias, "userId")
}

func (tc *TestContext) productExists(_ context.Context, alias, category, price string) error {
	body := map[string]any{"productName": alias, "category": category, "price": json.Number(price)}
	if err := tc.POSTCatalog("/products", body); err != nil {
		return err
	}
	return tc.rememberCreated(alias, "productId")
}

func (tc *TestContext) rememberCreated(alias, field string) error {
	if status := tc.GetLastResponseStatus(); status != 201 {
		return fmt.Errorf("creating %q: status %d: %s", alias, status, string(tc.LastResponseBody))
	}
	v, err := tc.GetResponseField(field)
	if err != nil {
		return err
	}
	id, ok := v.(float64)
	if !ok {
		return fmt.Errorf("%s is not a number: %v", field, v)
	}
	tc.Remember(alias, int64(id))
	return nil
}

func (tc *TestContext) recordInteraction(ctx context.Context, user, kind, product string) error {
	productID, err := tc.ID(product)
	if err != nil {
		return err
	}
	return tc.recordInteractionByID(ctx, user, kind, productID)
}

func (tc *TestContext) hasRecordedInteraction(ctx context.Context, user, kind, product string) error {
	if err := tc.recordInteraction(ctx, user, kind, product); err != nil {
		return err
	}
	if status := tc.GetLastResponseStatus(); status != 201 {
		return fmt.Errorf("recording interaction: status %d: %s", status, string(tc.LastResponseBody))
	}
	return nil
}

func (tc *TestContext) recordInteractionByID(_ context.Context, user, kind string, productID int64) error {
	userID, err := tc.ID(user)
	if err != nil {
		return err
	}
	return tc.POST("/interactions", map[string]any{
		"userId":          userID,
		"productId":       productID,
		"interactionType": kind,
	})
}

func (tc *TestContext) userShouldHaveInteractions(_ context.Context, user string, expected int) error {
	userID, err := tc.ID(user)
	if err != nil {
		return err
	}
	if err := tc.GET("/interactions?userId="+strconv.FormatInt(userID, 10), nil); err != nil {
		return err
	}
	var list []map[string]any
	if err := json.Unmarshal(tc.LastResponseBody, &list); err != nil {
		return fmt.Errorf("decode interactions: %w", err)
	}
	if len(list) != expected {
		return fmt.Errorf("expected %d interactions for %s, got %d", expected, user, len(list))
	}
	return nil
}

func (tc *TestContext) requestRecommendations(_ context.Context, user string) error {
	userID, err := tc.ID(user)
	if err != nil {
		return err
	}
	return tc.GET("/recommendations/"+strconv.FormatInt(userID, 10), nil)
}

func (tc *TestContext) recommendationsShouldBe(_ context.Context, expected string) error {
	var recs []struct {
		ProductName string `json:"productName"`
	}
	if err := json.Unmarshal(tc.LastResponseBody, &recs); err != nil {
		return fmt.Errorf("decode recommendations: %w", err)
	}
	names := make([]string, 0, len(recs))
	for _, r := range recs {
		names = append(names, r.ProductName)
	}
	if got := strings.Join(names, ", "); got != expected {
		return fmt.Errorf("expected recommendations %q, got %q", expected, got)
	}
	return nil
}
