// Package models defines the records persisted by the finance tracker.
//
// # Records
//
//   - User: a registered account, identified by its email.
//   - PersonalInfo: an append-only snapshot of free-form personal fields.
//   - FinancialRecord: the monthly income/expense figures of one identity.
//
// Every record carries a UUID in ID. PersonalInfo and FinancialRecord are
// owned through Email, which is either a registered user's email or
// AnonymousEmail for requests without a valid token.
//
// The JSON tags are the on-disk format, so they must stay compatible with
// files written by earlier versions of the service.
package models

// AnonymousEmail is the identity used for financial data submitted without
// a valid token.
const AnonymousEmail = "default@example.com"

// TimestampLayout is the format of the Timestamp fields.
const TimestampLayout = "Mon Jan _2 15:04:05 MST 2006"
