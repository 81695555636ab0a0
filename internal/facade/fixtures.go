package facade

import (
	"time"

	"github.com/MrJamesThe3rd/helios/internal/auth"
	"github.com/MrJamesThe3rd/helios/internal/chat"
	"github.com/MrJamesThe3rd/helios/internal/dashboard"
	"github.com/MrJamesThe3rd/helios/internal/insights"
	"github.com/MrJamesThe3rd/helios/internal/transaction"
)

// Demo account seeded into every facade.
const (
	DemoEmail    = "demo@helios.finance"
	DemoPassword = "helios123"
)

const (
	welcomeID      = "welcome"
	welcomeMessage = "Hello! I'm Helios, your AI financial assistant. Please login to access personalized insights."
)

func demoUser() auth.User {
	return auth.User{
		ID:    "u-demo",
		Name:  "Alex Morgan",
		Email: DemoEmail,
		Plan:  auth.PlanPremium,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seedTransactions has three expenses and four income entries.
func seedTransactions() []transaction.Transaction {
	return []transaction.Transaction{
		{ID: "t1", Date: day(2024, 3, 1), Amount: -34000, Description: "Uber Ride", Category: "Transport", Status: transaction.StatusCompleted},
		{ID: "t2", Date: day(2024, 3, 1), Amount: -45000, Description: "Starbucks", Category: "Food & Drink", Status: transaction.StatusCompleted},
		{ID: "t3", Date: day(2024, 2, 28), Amount: 8500000, Description: "Salary", Category: "Income", Status: transaction.StatusCompleted},
		{ID: "t4", Date: day(2024, 2, 27), Amount: 120000, Description: "Amazon Refund", Category: "Shopping", Status: transaction.StatusCompleted},
		{ID: "t5", Date: day(2024, 2, 26), Amount: -1850000, Description: "Apartment Rent", Category: "Housing", Status: transaction.StatusProcessing},
		{ID: "t6", Date: day(2024, 2, 25), Amount: 250000, Description: "Freelance Payment", Category: "Income", Status: transaction.StatusProcessing},
		{ID: "t7", Date: day(2024, 2, 24), Amount: 45000, Description: "Dividend", Category: "Investments", Status: transaction.StatusCompleted},
	}
}

var dashboardStats = dashboard.Stats{
	TotalBalance:  24093.82,
	BalanceChange: 12.4,
	MonthlySpend:  45231,
	Investments:   120000,
	ActiveSIPs:    3,
}

var stakingWeek = []dashboard.Point{
	{Name: "Mon", Value: 3000},
	{Name: "Tue", Value: 3500},
	{Name: "Wed", Value: 3200},
	{Name: "Thu", Value: 4000},
	{Name: "Fri", Value: 3800},
	{Name: "Sat", Value: 5000},
	{Name: "Sun", Value: 5500},
}

var stakingAssets = []dashboard.StakingAsset{
	{ID: "s1", Symbol: "ETH", Name: "Ethereum", APY: "4.2%", TVL: "$8,242", ChartColor: "#3B82F6", Allocation: 64, Data: stakingWeek},
	{ID: "s2", Symbol: "SOL", Name: "Solana", APY: "7.8%", TVL: "$4,102", ChartColor: "#60A5FA", Allocation: 28, Data: stakingWeek},
	{ID: "s3", Symbol: "USDC", Name: "USD Coin", APY: "5.1%", TVL: "$12,093", ChartColor: "#FFFFFF", Allocation: 8, Data: stakingWeek},
}

// activities are stamped relative to now.
func activities(now time.Time) []dashboard.Activity {
	return []dashboard.Activity{
		{ID: "a1", Type: dashboard.ActivityDeposit, Description: "Stake Deposit", Amount: "+2.5 ETH", Asset: "ETH", Timestamp: now.Add(-10 * time.Minute), Status: dashboard.ActivityCompleted},
		{ID: "a2", Type: dashboard.ActivityReward, Description: "Staking Reward", Amount: "+0.02 ETH", Asset: "ETH", Timestamp: now.Add(-time.Hour), Status: dashboard.ActivityCompleted},
		{ID: "a3", Type: dashboard.ActivityStake, Description: "Auto-compound", Amount: "+0.5 SOL", Asset: "SOL", Timestamp: now.Add(-2 * time.Hour), Status: dashboard.ActivityCompleted},
		{ID: "a4", Type: dashboard.ActivityWithdraw, Description: "Withdrawal", Amount: "-1.0 ETH", Asset: "ETH", Timestamp: now.Add(-24 * time.Hour), Status: dashboard.ActivityCompleted},
		{ID: "a5", Type: dashboard.ActivityDeposit, Description: "Stake Deposit", Amount: "+100 USDC", Asset: "USDC", Timestamp: now.Add(-48 * time.Hour), Status: dashboard.ActivityPending},
	}
}

var networkStats = insights.NetworkStats{
	TotalThroughput: 842.5,
	TotalNodes:      34,
	TotalRegions:    12,
	StakingAPY:      12.84,
	APYChange:       12.4,
	NetworkLatency:  14,
	Uptime:          99.9,
	Regions: []insights.Region{
		{ID: "r1", Name: "NA-East", Utilization: 60, Nodes: 12},
		{ID: "r2", Name: "EU-West", Utilization: 75, Nodes: 10},
		{ID: "r3", Name: "AP-South", Utilization: 90, Nodes: 12},
	},
}

// chartSeries is keyed by period. Periods without an entry get the default series.
var chartSeries = map[string][]insights.ChartPoint{
	insights.DefaultPeriod: {
		{Name: "Jan", UV: 4000, PV: 2400},
		{Name: "Feb", UV: 3000, PV: 1398},
		{Name: "Mar", UV: 2000, PV: 9800},
		{Name: "Apr", UV: 2780, PV: 3908},
		{Name: "May", UV: 1890, PV: 4800},
		{Name: "Jun", UV: 2390, PV: 3800},
		{Name: "Jul", UV: 3490, PV: 4300},
	},
	"1D": {
		{Name: "00:00", UV: 1200, PV: 900},
		{Name: "04:00", UV: 800, PV: 650},
		{Name: "08:00", UV: 2100, PV: 1800},
		{Name: "12:00", UV: 3400, PV: 2900},
		{Name: "16:00", UV: 2900, PV: 3100},
		{Name: "20:00", UV: 1800, PV: 1400},
	},
	"1M": {
		{Name: "W1", UV: 14200, PV: 11800},
		{Name: "W2", UV: 16900, PV: 12400},
		{Name: "W3", UV: 15100, PV: 17300},
		{Name: "W4", UV: 18800, PV: 16200},
	},
	"1Y": {
		{Name: "Q1", UV: 48200, PV: 39100},
		{Name: "Q2", UV: 52700, PV: 44800},
		{Name: "Q3", UV: 47900, PV: 51200},
		{Name: "Q4", UV: 61300, PV: 55400},
	},
}

func welcome(at time.Time) chat.Message {
	return chat.Message{
		ID:        welcomeID,
		Role:      chat.RoleAssistant,
		Content:   welcomeMessage,
		Timestamp: at,
	}
}

// advisoryReport is the report body the financial insights endpoint wraps in
// a fenced answer string.
const advisoryReport = `{
  "financial_advisory_report": {
    "client_profile": {
      "name": "Jane Doe",
      "account_number": "XXXX-XXXX-1234",
      "analysis_period": "01 Feb 2024 - 29 Feb 2024"
    },
    "executive_summary": "Healthy surplus month. Income comfortably covered fixed costs and discretionary spend stayed flat.",
    "financial_analysis": {
      "liquidity_assessment": {
        "status": "Stable",
        "start_balance": 18250.40,
        "end_balance": 24093.82,
        "insight": "Balance grew steadily with no overdraft days."
      },
      "cash_flow_dynamics": {
        "total_credits": 87450.00,
        "total_debits": 81606.58,
        "net_flow_observation": "Net inflow of 5843.42 driven by salary and freelance income."
      },
      "cost_benefit_analysis": {
        "total_fees": 12.50,
        "interest_earned_period": 4.18,
        "interest_earned_ytd": 9.02,
        "insight": "Account fees exceed interest earned. A fee-free account would save about 150 per year."
      }
    },
    "strategic_recommendations": [
      {"category": "Savings", "action": "Automate a monthly transfer", "details": "Move 20% of salary to a high-yield savings account on payday."},
      {"category": "Fees", "action": "Switch account tier", "details": "Current maintenance fees outweigh interest; consider a no-fee account."},
      {"category": "Investments", "action": "Increase SIP contributions", "details": "Surplus supports raising systematic investments by 10%."}
    ]
  }
}`
