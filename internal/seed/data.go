package seed

import (
	customerdomain "github.com/smallbiznis/dashboard/internal/customer/domain"
	invoicedomain "github.com/smallbiznis/dashboard/internal/invoice/domain"
	revenuedomain "github.com/smallbiznis/dashboard/internal/revenue/domain"
)

var customers = []customerdomain.Customer{
	{ID: "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa", Name: "Evil Rabbit", Email: "evil@rabbit.com", ImageURL: "/customers/evil-rabbit.png"},
	{ID: "3958dc9e-712f-4377-85e9-fec4b6a6442a", Name: "Delba de Oliveira", Email: "delba@oliveira.com", ImageURL: "/customers/delba-de-oliveira.png"},
	{ID: "3958dc9e-742f-4377-85e9-fec4b6a6442a", Name: "Lee Robinson", Email: "lee@robinson.com", ImageURL: "/customers/lee-robinson.png"},
	{ID: "76d65c26-f784-44a2-ac19-586678f7c2f2", Name: "Michael Novotny", Email: "michael@novotny.com", ImageURL: "/customers/michael-novotny.png"},
	{ID: "cc27c14a-0acf-4f4a-a6c9-d45682c144b9", Name: "Amy Burns", Email: "amy@burns.com", ImageURL: "/customers/amy-burns.png"},
	{ID: "13d07535-c59e-4157-a011-f8d2ef4e0cbb", Name: "Balazs Orban", Email: "balazs@orban.com", ImageURL: "/customers/balazs-orban.png"},
}

type invoiceSeed struct {
	customerID string
	amount     int64
	status     string
	date       string
}

// amounts in cents
var invoices = []invoiceSeed{
	{customers[0].ID, 15795, invoicedomain.StatusPending, "2022-12-06"},
	{customers[1].ID, 20348, invoicedomain.StatusPending, "2022-11-14"},
	{customers[4].ID, 3040, invoicedomain.StatusPaid, "2022-10-29"},
	{customers[3].ID, 44800, invoicedomain.StatusPaid, "2023-09-10"},
	{customers[5].ID, 34577, invoicedomain.StatusPending, "2023-08-05"},
	{customers[2].ID, 54246, invoicedomain.StatusPending, "2023-07-16"},
	{customers[0].ID, 666, invoicedomain.StatusPending, "2023-06-27"},
	{customers[3].ID, 32545, invoicedomain.StatusPaid, "2023-06-09"},
	{customers[4].ID, 1250, invoicedomain.StatusPaid, "2023-06-17"},
	{customers[5].ID, 8546, invoicedomain.StatusPaid, "2023-06-07"},
	{customers[1].ID, 500, invoicedomain.StatusPaid, "2023-08-19"},
	{customers[5].ID, 8945, invoicedomain.StatusPaid, "2023-06-03"},
	{customers[2].ID, 1000, invoicedomain.StatusPaid, "2022-06-05"},
}

var revenue = []revenuedomain.Revenue{
	{Month: "Jan", Revenue: 2000},
	{Month: "Feb", Revenue: 1800},
	{Month: "Mar", Revenue: 2200},
	{Month: "Apr", Revenue: 2500},
	{Month: "May", Revenue: 2300},
	{Month: "Jun", Revenue: 3200},
	{Month: "Jul", Revenue: 3500},
	{Month: "Aug", Revenue: 3700},
	{Month: "Sep", Revenue: 2500},
	{Month: "Oct", Revenue: 2800},
	{Month: "Nov", Revenue: 3000},
	{Month: "Dec", Revenue: 4800},
}
