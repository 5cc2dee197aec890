// Package shopsight provides the core types and functions to analyse a
// synthetic eCommerce order book. It is designed to be local-first and
// deterministic: the whole dataset lives in memory for the duration of a
// session and every derived view is a pure function of it.
//
// The core functionalities include:
//   - Dataset Management: Loading and validating a flat CSV order file
//     into an immutable in-memory table of OrderRecord values.
//   - Filtering: Narrowing the table with a declarative Filter (date
//     range, categories, payment methods, regions) without mutating the
//     source, preserving row order.
//   - Aggregation Views: Daily and periodic profit/loss series, product
//     and category rankings, customer value and payment mix summaries.
//   - Fraud Rules: A small ordered set of independent heuristics
//     (discount ratio, large total, repeated coupon, velocity) that
//     annotate each record with a suspicion flag and reason codes.
//
// This package serves as the foundational logic for the `shopsight`
// command-line tool and its dashboard server, ensuring that terminal
// reports and the web dashboard are computed from a single source of
// truth.
package shopsight
