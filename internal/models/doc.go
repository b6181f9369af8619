// Package models defines the core domain models for GiftPool.
//
// A Group is created once, with its participant list, budget, and recipient
// frozen at creation time, and carries one PaymentRecord per participant.
// All later mutation is the single false-to-true transition of a record's
// Paid flag, driven by payment-provider webhooks or manual confirmation.
//
// Design principles:
//
//  1. Participants are identified by email address (no user accounts).
//  2. PaymentRecord.Paid is monotonic: there is no un-pay operation.
//  3. Models hold no behavior beyond cheap derived values; state
//     transitions live in the service layer.
package models
