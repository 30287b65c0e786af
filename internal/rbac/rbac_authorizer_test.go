package rbac

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayrollAuthorizer_CanPerform(t *testing.T) {
	auth := NewPayrollAuthorizer(NewService(payrollRepo(), newTestEnforcer(t)))
	ctx := context.Background()

	ok, err := auth.CanPerform(ctx, "company-1", "emp-finance", "finance_approve")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = auth.CanPerform(ctx, "company-1", "emp-hr", "finance_approve")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = auth.CanPerform(ctx, "company-1", "", "submit")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPayrollAuthorizer_Capabilities(t *testing.T) {
	auth := NewPayrollAuthorizer(NewService(payrollRepo(), newTestEnforcer(t)))
	ctx := context.Background()

	actions, err := auth.Capabilities(ctx, "company-1", "emp-finance")
	require.NoError(t, err)
	assert.Equal(t, []string{"finance_approve", "resolve_irregularity"}, actions)

	actions, err = auth.Capabilities(ctx, "company-1", "emp-hr")
	require.NoError(t, err)
	assert.Equal(t, []string{"submit"}, actions)

	actions, err = auth.Capabilities(ctx, "company-2", "emp-hr")
	require.NoError(t, err)
	assert.Empty(t, actions)
}
