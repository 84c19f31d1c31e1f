package demo

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/agentcore/gateway"
	"github.com/hupe1980/agentcore/lifecycle"
)

// Gateway walks through the gateway lifecycle: resolve the caller account,
// create an MCP gateway, wait for readiness, show its configuration, then
// delete it and wait for the deletion to complete.
func Gateway(ctx context.Context, dc *Context) error {
	dc.banner("AgentCore Gateway Demo")

	dc.step(1, "Creating Gateway...")

	roleARN := dc.GatewayRoleARN
	if dc.Identity != nil {
		identity, err := Whoami(ctx, dc.Identity)
		if err != nil {
			return err
		}
		dc.note("Account: %s", identity.Account)
		roleARN = gatewayRoleARN(dc.GatewayRoleARN, identity.Account)
	}
	if roleARN == "" {
		return fmt.Errorf("no gateway execution role configured")
	}

	gw, err := dc.Gateway.Create(ctx, gateway.CreateInput{
		Name:        fmt.Sprintf("demo-gateway-%d", time.Now().Unix()),
		Description: "Gateway demo - universal protocol translator",
		RoleARN:     roleARN,
	})
	if err != nil {
		return err
	}
	dc.ok("Gateway created: %s", gw.ID)

	release := lifecycle.NewReleaser(dc.log(), "gateway", func(ctx context.Context) error {
		dc.step(3, "Cleaning up...")
		if err := dc.Gateway.DeleteAndWait(ctx, gw.ID, progress(dc, func(g gateway.Gateway) string {
			return string(g.Status)
		})); err != nil {
			dc.note("⚠ Gateway cleanup failed: %v", err)
			dc.note("Manual cleanup: aws bedrock-agentcore-control delete-gateway --gateway-identifier %s --region %s", gw.ID, dc.Region)
			return err
		}
		dc.ok("Gateway deleted")
		return nil
	})
	defer release.Release(context.WithoutCancel(ctx))

	dc.note("Waiting for Gateway to become ready...")
	ready, err := dc.Gateway.WaitReady(ctx, gw.ID, progress(dc, func(g gateway.Gateway) string {
		return string(g.Status)
	}))
	if err != nil {
		return err
	}
	dc.ok("Gateway is %s", ready.Status)

	dc.step(2, "Gateway configuration:")
	dc.note("- Gateway ID: %s", ready.ID)
	dc.note("- Endpoint: %s", ready.URL)
	dc.note("- Protocol: MCP (Model Context Protocol)")
	dc.note("- Auth: None (demo) - use IAM or JWT in production")

	dc.printf("\n✓ Gateway working successfully!")
	return nil
}
