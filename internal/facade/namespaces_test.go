package facade_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/helios/internal/advisory"
	"github.com/MrJamesThe3rd/helios/internal/chat"
	"github.com/MrJamesThe3rd/helios/internal/facade"
	"github.com/MrJamesThe3rd/helios/internal/insights"
	"github.com/MrJamesThe3rd/helios/internal/matching"
	"github.com/MrJamesThe3rd/helios/internal/report"
	"github.com/MrJamesThe3rd/helios/internal/settings"
	"github.com/MrJamesThe3rd/helios/internal/transaction"
)

func TestDashboard_TransactionFixture(t *testing.T) {
	f := newFacade(t, nil)
	ctx := context.Background()

	txs, err := f.Dashboard.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 7)

	expenses := transaction.Apply(txs, transaction.FilterExpense, "")
	income := transaction.Apply(txs, transaction.FilterIncome, "")

	assert.Len(t, expenses, 3)
	assert.Len(t, income, 4)

	for _, tx := range expenses {
		assert.Negative(t, tx.Amount)
	}

	summary, err := f.Dashboard.TransactionSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, summary.TotalIncome-summary.TotalExpenses, summary.NetBalance)
	assert.Equal(t, transaction.Summarize(txs), summary)
}

func TestDashboard_ReturnsCopies(t *testing.T) {
	f := newFacade(t, nil)
	ctx := context.Background()

	assets, err := f.Dashboard.StakingAssets(ctx)
	require.NoError(t, err)
	require.Len(t, assets, 3)

	assets[0].Symbol = "XXX"
	assets[0].Data[0].Value = -1

	again, err := f.Dashboard.StakingAssets(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ETH", again[0].Symbol)
	assert.Equal(t, float64(3000), again[0].Data[0].Value)
	assert.Equal(t, float64(3000), again[1].Data[0].Value)

	stats, err := f.Dashboard.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 24093.82, stats.TotalBalance)

	activities, err := f.Dashboard.Activities(ctx)
	require.NoError(t, err)
	assert.Len(t, activities, 5)
}

func TestInsights_ChartData(t *testing.T) {
	f := newFacade(t, nil)
	ctx := context.Background()

	def, err := f.Insights.ChartData(ctx, insights.DefaultPeriod)
	require.NoError(t, err)
	require.Len(t, def, 7)
	assert.Equal(t, insights.ChartPoint{Name: "Jan", UV: 4000, PV: 2400}, def[0])

	unknown, err := f.Insights.ChartData(ctx, "5Y")
	require.NoError(t, err)
	assert.Equal(t, def, unknown)

	day, err := f.Insights.ChartData(ctx, "1D")
	require.NoError(t, err)
	assert.NotEqual(t, def, day)

	stats, err := f.Insights.NetworkStats(ctx)
	require.NoError(t, err)
	stats.Regions[0].Name = "changed"

	again, err := f.Insights.NetworkStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "NA-East", again.Regions[0].Name)
}

func TestFinancialInsights_Analyze(t *testing.T) {
	f := newFacade(t, nil)
	ctx := context.Background()

	raw, err := f.FinancialInsights.Analyze(ctx, advisory.Statement{Name: "feb.pdf", Content: []byte("%PDF-1.4\n%fake statement")})
	require.NoError(t, err)
	assert.Contains(t, string(raw), "```json")

	r, err := report.Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", r.ClientProfile.Name)
	assert.Equal(t, 87450.0, r.FinancialAnalysis.CashFlow.TotalCredits)
	assert.Len(t, r.StrategicRecommendations, 3)

	_, err = f.FinancialInsights.Analyze(ctx, advisory.Statement{Name: "notes.txt", Content: []byte("plain text")})
	assert.ErrorIs(t, err, advisory.ErrInvalidStatement)
}

func TestChat_Conversation(t *testing.T) {
	f := newFacade(t, nil)
	ctx := context.Background()

	msgs, err := f.Chat.Messages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "welcome", msgs[0].ID)
	assert.Equal(t, chat.RoleAssistant, msgs[0].Role)

	ex, err := f.Chat.Send(ctx, "Show me the current market trends")
	require.NoError(t, err)
	assert.Equal(t, chat.RoleUser, ex.UserMessage.Role)
	assert.Equal(t, "Show me the current market trends", ex.UserMessage.Content)
	assert.True(t, strings.HasPrefix(ex.UserMessage.ID, "user-"))
	assert.True(t, strings.HasPrefix(ex.AIResponse.ID, "ai-"))
	require.NotNil(t, ex.AIResponse.Rich)
	assert.Equal(t, chat.RichStats, ex.AIResponse.Rich.Kind)

	ex.AIResponse.Rich.Data["portfolioChange"] = "tampered"

	msgs, err = f.Chat.Messages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.False(t, msgs[1].IsPending())
	assert.Equal(t, "+12.4%", msgs[1].Rich.Data["portfolioChange"])

	require.NoError(t, f.Chat.Clear(ctx))

	msgs, err = f.Chat.Messages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "welcome", msgs[0].ID)
}

func TestChat_RichContentIsDeepCopied(t *testing.T) {
	f := newFacade(t, nil)
	ctx := context.Background()

	ex, err := f.Chat.Send(ctx, "Help me optimize my portfolio")
	require.NoError(t, err)
	require.NotNil(t, ex.AIResponse.Rich)

	items, ok := ex.AIResponse.Rich.Data["items"].([]map[string]any)
	require.True(t, ok)
	items[0]["name"] = "tampered"

	ex, err = f.Chat.Send(ctx, "Perform a risk analysis on my investments")
	require.NoError(t, err)

	rows, ok := ex.AIResponse.Rich.Data["rows"].([][]string)
	require.True(t, ok)
	rows[0][0] = "tampered"

	msgs, err := f.Chat.Messages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 4)

	stored, ok := msgs[1].Rich.Data["items"].([]map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ethereum", stored[0]["name"])

	table, ok := msgs[3].Rich.Data["rows"].([][]string)
	require.True(t, ok)
	assert.Equal(t, "ETH", table[0][0])
}

func TestChat_Replies(t *testing.T) {
	tests := []struct {
		prompt   string
		wantKind chat.RichKind
	}{
		{prompt: "Help me optimize my portfolio", wantKind: chat.RichChart},
		{prompt: "Perform a risk analysis on my investments", wantKind: chat.RichTable},
		{prompt: "What are your predictions for next month?"},
		{prompt: "hello there"},
	}

	f := newFacade(t, nil)

	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			ex, err := f.Chat.Send(context.Background(), tt.prompt)
			require.NoError(t, err)
			assert.NotEmpty(t, ex.AIResponse.Content)

			if tt.wantKind == "" {
				assert.Nil(t, ex.AIResponse.Rich)
				return
			}

			require.NotNil(t, ex.AIResponse.Rich)
			assert.Equal(t, tt.wantKind, ex.AIResponse.Rich.Kind)
		})
	}
}

func TestDocuments_UploadStatement(t *testing.T) {
	f := newFacade(t, nil)
	ctx := context.Background()

	csv := "Date,Description,Category,Amount\n2024-03-05,Groceries,Food & Drink,-82.40\n2024-03-06,Bonus,Income,500.00\n"

	res, err := f.Documents.UploadStatement(ctx, "march.csv", strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, "signed", res.Profile)
	assert.Len(t, res.Imported, 2)
	assert.Zero(t, res.Duplicates)

	again, err := f.Documents.UploadStatement(ctx, "march.csv", strings.NewReader(csv))
	require.NoError(t, err)
	assert.Empty(t, again.Imported)
	assert.Equal(t, 2, again.Duplicates)

	txs, err := f.Dashboard.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 9)
	assert.Equal(t, "Bonus", txs[0].Description)

	_, err = f.Documents.UploadStatement(ctx, "junk.csv", strings.NewReader("a,b\n1,2\n"))
	assert.Error(t, err)
}

func TestExpense_ProcessBill(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  []byte
		wantDesc string
		want     int64
	}{
		{name: "TextTotal", file: "receipt.txt", content: []byte("Subtotal 10.00\nTax 2.50\nTOTAL: 12,50 EUR\n"), wantDesc: "Bill: receipt", want: -1250},
		{name: "ThousandsTotal", file: "invoice.txt", content: []byte("Total due: 1,234.56\n"), wantDesc: "Bill: invoice", want: -123456},
		{name: "Image", file: "scan.png", content: []byte("\x89PNG\r\n\x1a\n0000"), wantDesc: "Bill: scan", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFacade(t, nil)

			tx, err := f.Expense.ProcessBill(context.Background(), tt.file, tt.content)
			require.NoError(t, err)

			assert.Equal(t, transaction.StatusProcessing, tx.Status)
			assert.Equal(t, tt.wantDesc, tx.Description)
			assert.Equal(t, tt.want, tx.Amount)
			assert.Equal(t, "Bills", tx.Category)
		})
	}
}

func TestExpense_ProcessBillEmpty(t *testing.T) {
	f := newFacade(t, nil)

	_, err := f.Expense.ProcessBill(context.Background(), "empty.pdf", nil)
	assert.ErrorIs(t, err, facade.ErrEmptyDocument)
}

func TestFraud_Analyze(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantScam bool
		wantErr  error
	}{
		{name: "GiftCard", text: "URGENT ACTION required: pay the fee with a gift card", wantScam: true},
		{name: "Lottery", text: "Congratulations, you have won the lottery", wantScam: true},
		{name: "Benign", text: "Lunch tomorrow at noon?"},
		{name: "Blank", text: "   ", wantErr: facade.ErrEmptyText},
	}

	f := newFacade(t, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := f.Fraud.Analyze(context.Background(), tt.text)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantScam, v.IsScam)
			assert.NotEmpty(t, v.Reason)
		})
	}
}

func TestSettings_Save(t *testing.T) {
	f := newFacade(t, nil)

	assert.NoError(t, f.Settings.Save(context.Background(), settings.Defaults()))
}

func TestDocuments_UploadStatementCategorizes(t *testing.T) {
	rules := matching.NewMemory(matching.DefaultRules()...)
	f := newFacade(t, nil, facade.WithCategoryRules(rules))
	ctx := context.Background()

	require.NoError(t, f.Categories.Learn(ctx, matching.Rule{Pattern: "continente", Category: "Groceries"}))

	csv := "Data mov.;Descrição;Montante\n02-03-2024;UBER *TRIP;-12,30\n03-03-2024;CONTINENTE LISBOA;-45,10\n04-03-2024;PADARIA;-3,20\n"

	res, err := f.Documents.UploadStatement(ctx, "cgd.csv", strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, res.Imported, 3)

	assert.Equal(t, "Transport", res.Imported[0].Category)
	assert.Equal(t, "Groceries", res.Imported[1].Category)
	assert.Equal(t, "Uncategorized", res.Imported[2].Category)
}
