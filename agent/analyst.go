package agent

import (
	"context"
	"fmt"

	"github.com/etnz/shopsight"
	"github.com/etnz/shopsight/date"
	"github.com/etnz/shopsight/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// NewAnalyst returns the sales analyst expert, its tools bound to the
// given order book.
func NewAnalyst(ds *shopsight.Dataset) *Expert {
	tools := analystTools(ds)
	return &Expert{
		Name:      "Analyst",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(tools)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a sales analyst for an eCommerce order book.
			Use the available tools to compute the figures you need; never
			guess numbers. The tools return markdown tables: quote the
			relevant figures in your answer rather than pasting whole
			tables, unless the user asks for the table.

			Every tool accepts optional "from" and "to" dates (YYYY-MM-DD)
			and an optional "category" to restrict the analysis. When the
			user asks about fraud, call fraud_review and explain what each
			reason code means in plain words.
		`}}},
		},
		Library: NewLibrary(tools),
	}
}

// filterArgs are the restriction parameters shared by every tool.
var filterArgs = map[string]*genai.Schema{
	"from": {
		Type:        genai.TypeString,
		Description: "Start date (inclusive) in YYYY-MM-DD format. Unbounded when absent.",
	},
	"to": {
		Type:        genai.TypeString,
		Description: "End date (inclusive) in YYYY-MM-DD format. Unbounded when absent.",
	},
	"category": {
		Type:        genai.TypeString,
		Description: "Restrict the analysis to one product category.",
	},
}

func analystTools(ds *shopsight.Dataset) []Function {
	view := func(args map[string]any) (*shopsight.Dataset, error) {
		f, err := parseFilter(args)
		if err != nil {
			return nil, err
		}
		return ds.Select(f), nil
	}

	markdownTool := func(name, description string, extra map[string]*genai.Schema, render func(*shopsight.Dataset, map[string]any) string) Function {
		params := &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}}
		for k, v := range filterArgs {
			params.Properties[k] = v
		}
		for k, v := range extra {
			params.Properties[k] = v
		}
		return &Func{
			Decl: &genai.FunctionDeclaration{
				Name:        name,
				Description: description,
				Parameters:  params,
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown-formatted report.",
				},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				v, err := view(args)
				if err != nil {
					return errorResponse(id, name, err)
				}
				return outputResponse(id, name, render(v, args))
			},
		}
	}

	kArg := map[string]*genai.Schema{
		"k": {
			Type:        genai.TypeInteger,
			Description: "Number of rows to return, 10 when absent.",
		},
	}

	return []Function{
		markdownTool("sales_summary",
			"Headline metrics of the order book: revenue, profit, margin, orders, units, customers, average order value, discount rate.",
			nil,
			func(v *shopsight.Dataset, args map[string]any) string {
				return renderer.SummaryMarkdown(shopsight.Summarize(v))
			}),
		markdownTool("profit_trend",
			"Profit and loss over time, bucketed per day, week or month.",
			map[string]*genai.Schema{
				"period": {
					Type:        genai.TypeString,
					Description: `One of "day", "week", "month". Default is "day".`,
				},
			},
			func(v *shopsight.Dataset, args map[string]any) string {
				switch args["period"] {
				case "week":
					return renderer.PeriodicMarkdown(shopsight.PeriodicProfit(v, date.Weekly), date.Weekly)
				case "month":
					return renderer.PeriodicMarkdown(shopsight.PeriodicProfit(v, date.Monthly), date.Monthly)
				default:
					return renderer.DailyMarkdown(shopsight.DailyProfit(v))
				}
			}),
		markdownTool("top_products",
			"The best selling products by units sold.",
			kArg,
			func(v *shopsight.Dataset, args map[string]any) string {
				return renderer.TopProductsMarkdown(shopsight.TopProducts(v, intArg(args, "k")))
			}),
		markdownTool("top_categories",
			"The best selling categories by units sold.",
			kArg,
			func(v *shopsight.Dataset, args map[string]any) string {
				return renderer.TopCategoriesMarkdown(shopsight.TopCategories(v, intArg(args, "k")))
			}),
		markdownTool("top_customers",
			"The highest spending customers.",
			kArg,
			func(v *shopsight.Dataset, args map[string]any) string {
				return renderer.CustomersMarkdown(shopsight.TopCustomers(v, intArg(args, "k")))
			}),
		markdownTool("payment_mix",
			"Order count and revenue per payment method.",
			nil,
			func(v *shopsight.Dataset, args map[string]any) string {
				return renderer.PaymentsMarkdown(shopsight.PaymentMix(v))
			}),
		markdownTool("fraud_review",
			"Runs the fraud rules over the orders: flags per rule, revenue at risk, and the flagged orders with reasons.",
			nil,
			func(v *shopsight.Dataset, args map[string]any) string {
				return renderer.FraudMarkdown(v, shopsight.EvaluateFraud(v, shopsight.DefaultFraudConfig()))
			}),
	}
}

// parseFilter builds a Filter from the tool's restriction arguments.
func parseFilter(args map[string]any) (shopsight.Filter, error) {
	var f shopsight.Filter
	for _, side := range []struct {
		name string
		dst  *date.Date
	}{{"from", &f.Range.From}, {"to", &f.Range.To}} {
		v, ok := args[side.name]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return f, fmt.Errorf("argument %q is not a string but %T", side.name, v)
		}
		if s == "" {
			continue
		}
		d, err := date.Parse(s)
		if err != nil {
			return f, err
		}
		*side.dst = d
	}
	if v, ok := args["category"]; ok {
		if s, ok := v.(string); ok && s != "" {
			f.Categories = []string{s}
		}
	}
	return f, nil
}

func intArg(args map[string]any, name string) int {
	switch v := args[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func errorResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:       id,
		Name:     name,
		Response: map[string]any{"error": err.Error()},
	}
}

func outputResponse(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:       id,
		Name:     name,
		Response: map[string]any{"output": output},
	}
}
