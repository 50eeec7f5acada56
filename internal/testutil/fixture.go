package testutil

import "github.com/rsviz/budgetflow/internal/record"

// SampleDataset builds the canonical test dataset. All amounts are round
// figures chosen so every layer sums by hand:
//
//	デジタル庁   budget 1000: projects 101 (600/500), 102 (300/300), 103 (100/0, no payees)
//	環境省       budget  800: projects 201 (500/450), 202 (300/200), 203 (0/50)
//	国土交通省   budget  600: projects 301 (400/400), 302 (200/150)
//	復興庁       budget   10: project  401 (10/0, no payees)
//
// Project 103 exercises the missing-payee path, 203 the zero-budget path,
// and 復興庁 the all-budget-no-spending path. Recipient 1005 carries the
// reserved aggregate payee name.
func SampleDataset() *record.Dataset {
	ministries := []record.Ministry{
		{ID: 1, Name: "デジタル庁", TotalBudget: 1000, BureauCount: 2, ProjectIDs: []int{101, 102, 103}},
		{ID: 2, Name: "環境省", TotalBudget: 800, BureauCount: 3, ProjectIDs: []int{201, 202, 203}},
		{ID: 3, Name: "国土交通省", TotalBudget: 600, BureauCount: 4, ProjectIDs: []int{301, 302}},
		{ID: 4, Name: "復興庁", TotalBudget: 10, BureauCount: 1, ProjectIDs: []int{401}},
	}

	projects := []record.Project{
		{
			ProjectID: 101, ProjectName: "ガバメントクラウド整備", Ministry: "デジタル庁",
			Bureau: "デジタル社会共通機能グループ", FiscalYear: 2024,
			InitialBudget: 550, SupplementaryBudget: 50, TotalBudget: 600,
			ExecutedAmount: 500, ExecutionRate: 0.83, AccountCategory: "一般会計",
			SpendingIDs: []int{1001, 1002}, TotalSpendingAmount: 500,
		},
		{
			ProjectID: 102, ProjectName: "マイナンバー基盤", Ministry: "デジタル庁",
			Bureau: "国民向けサービスグループ", FiscalYear: 2024,
			InitialBudget: 300, TotalBudget: 300,
			ExecutedAmount: 300, ExecutionRate: 1.0, AccountCategory: "一般会計",
			SpendingIDs: []int{1002, 1005}, TotalSpendingAmount: 300,
		},
		{
			ProjectID: 103, ProjectName: "デジタル人材育成", Ministry: "デジタル庁",
			Bureau: "戦略・組織グループ", FiscalYear: 2024,
			InitialBudget: 100, TotalBudget: 100,
			ExecutedAmount: 0, ExecutionRate: 0, AccountCategory: "一般会計",
		},
		{
			ProjectID: 201, ProjectName: "脱炭素推進事業", Ministry: "環境省",
			Bureau: "地球環境局", FiscalYear: 2024,
			InitialBudget: 500, TotalBudget: 500,
			ExecutedAmount: 450, ExecutionRate: 0.9, AccountCategory: "エネルギー対策特別会計",
			SpendingIDs: []int{1001, 1003, 1005}, TotalSpendingAmount: 450,
		},
		{
			ProjectID: 202, ProjectName: "自然公園整備", Ministry: "環境省",
			Bureau: "自然環境局", FiscalYear: 2024,
			InitialBudget: 300, TotalBudget: 300,
			ExecutedAmount: 200, ExecutionRate: 0.67, AccountCategory: "一般会計",
			SpendingIDs: []int{1003}, TotalSpendingAmount: 200,
		},
		{
			ProjectID: 203, ProjectName: "緊急対応費", Ministry: "環境省",
			Bureau: "大臣官房", FiscalYear: 2024,
			TotalBudget: 0,
			ExecutedAmount: 50, AccountCategory: "一般会計",
			SpendingIDs: []int{1003}, TotalSpendingAmount: 50,
		},
		{
			ProjectID: 301, ProjectName: "道路維持管理", Ministry: "国土交通省",
			Bureau: "道路局", FiscalYear: 2024,
			InitialBudget: 400, TotalBudget: 400,
			ExecutedAmount: 400, ExecutionRate: 1.0, AccountCategory: "一般会計",
			SpendingIDs: []int{1004}, TotalSpendingAmount: 400,
		},
		{
			ProjectID: 302, ProjectName: "港湾整備", Ministry: "国土交通省",
			Bureau: "港湾局", FiscalYear: 2024,
			InitialBudget: 200, TotalBudget: 200,
			ExecutedAmount: 150, ExecutionRate: 0.75, AccountCategory: "一般会計",
			SpendingIDs: []int{1004}, TotalSpendingAmount: 150,
		},
		{
			ProjectID: 401, ProjectName: "復興調査", Ministry: "復興庁",
			Bureau: "統括官付", FiscalYear: 2024,
			InitialBudget: 10, TotalBudget: 10,
			ExecutedAmount: 0, ExecutionRate: 0, AccountCategory: "東日本大震災復興特別会計",
		},
	}

	recipients := []record.Recipient{
		{
			SpendingID: 1001, SpendingName: "富士通株式会社",
			CorporateNumber: "1020001071491", Location: "神奈川県川崎市",
			TotalSpendingAmount: 400, ProjectCount: 2,
			Projects: []record.Contribution{
				{ProjectID: 101, Amount: 300, BlockName: "クラウド基盤構築", ContractMethod: "一般競争契約"},
				{ProjectID: 201, Amount: 100, BlockName: "排出量管理システム", ContractMethod: "一般競争契約"},
			},
		},
		{
			SpendingID: 1002, SpendingName: "株式会社NTTデータ",
			CorporateNumber: "9010601021385", Location: "東京都江東区",
			TotalSpendingAmount: 350, ProjectCount: 2,
			Projects: []record.Contribution{
				{ProjectID: 101, Amount: 200, BlockName: "運用保守", ContractMethod: "随意契約"},
				{ProjectID: 102, Amount: 150, BlockName: "カード管理システム", ContractMethod: "一般競争契約"},
			},
		},
		{
			SpendingID: 1003, SpendingName: "一般財団法人日本環境協会",
			CorporateNumber: "7010005018674", Location: "東京都千代田区",
			TotalSpendingAmount: 500, ProjectCount: 3,
			Projects: []record.Contribution{
				{ProjectID: 201, Amount: 250, BlockName: "普及啓発", ContractMethod: "随意契約"},
				{ProjectID: 202, Amount: 200, BlockName: "公園施設整備", ContractMethod: "一般競争契約"},
				{ProjectID: 203, Amount: 50, BlockName: "緊急調査", ContractMethod: "随意契約"},
			},
		},
		{
			SpendingID: 1004, SpendingName: "日本建設コンソーシアム",
			CorporateNumber: "5011101012991", Location: "東京都港区",
			TotalSpendingAmount: 550, ProjectCount: 2,
			Projects: []record.Contribution{
				{ProjectID: 301, Amount: 400, BlockName: "舗装補修", ContractMethod: "指名競争契約"},
				{ProjectID: 302, Amount: 150, BlockName: "岸壁改良", ContractMethod: "指名競争契約"},
			},
		},
		{
			SpendingID: 1005, SpendingName: record.ReservedOtherName,
			TotalSpendingAmount: 250, ProjectCount: 2,
			Projects: []record.Contribution{
				{ProjectID: 102, Amount: 150},
				{ProjectID: 201, Amount: 100},
			},
		},
	}

	stats := []record.MinistryStats{
		{Ministry: "デジタル庁", TotalSpending: 800},
		{Ministry: "環境省", TotalSpending: 700},
		{Ministry: "国土交通省", TotalSpending: 550},
		{Ministry: "復興庁", TotalSpending: 0},
	}

	return record.NewDataset(2024, ministries, projects, recipients, stats)
}
