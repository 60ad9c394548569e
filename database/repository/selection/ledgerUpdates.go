package selectionRepo

import (
	"fmt"
	"time"

	"fleetdesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ApplyLedgerUpdate applies all increments, history pushes and payment-meta
// sets of one recorded payment in a single UpdateOne, so two recorders
// hitting the same selection at the same instant both land their increments.
func (r *MongoSelectionRepo) ApplyLedgerUpdate(id string, upd LedgerUpdate) (*models.PlanSelection, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	inc := bson.M{}
	addInc := func(field string, v float64) {
		if v != 0 {
			inc[field] = v
		}
	}
	addInc("depositPaid", upd.DepositPaidInc)
	addInc("rentPaid", upd.RentPaidInc)
	addInc("accidentalCoverPaid", upd.AccidentalCoverPaidInc)
	addInc("extraAmountPaid", upd.ExtraAmountPaidInc)
	addInc("paidAmount", upd.PaidAmountInc)
	addInc("adminPaidAmount", upd.AdminPaidAmountInc)

	push := bson.M{}
	if upd.ExtraCharge != nil {
		addInc("extraAmount", upd.ExtraCharge.Amount)
		push["extraHistory"] = *upd.ExtraCharge
	}
	if upd.AdjustmentCredit != nil {
		addInc("adjustmentAmount", upd.AdjustmentCredit.Amount)
		push["adjustmentHistory"] = *upd.AdjustmentCredit
	}
	if upd.DriverEvent != nil {
		push["driverPayments"] = *upd.DriverEvent
	}
	if upd.AdminEvent != nil {
		push["adminPayments"] = *upd.AdminEvent
	}

	set := bson.M{"updatedAt": time.Now()}
	if upd.SetPaymentStatus != "" {
		set["paymentStatus"] = upd.SetPaymentStatus
	}
	if upd.SetPaymentMode != "" {
		set["paymentMode"] = upd.SetPaymentMode
	}
	if upd.SetPaymentDate != nil {
		set["paymentDate"] = *upd.SetPaymentDate
	}

	update := bson.M{"$set": set}
	if len(inc) > 0 {
		update["$inc"] = inc
	}
	if len(push) > 0 {
		update["$push"] = push
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var sel models.PlanSelection
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&sel)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to apply ledger update to selection %s: %w", id, err)
	}
	return &sel, nil
}

// TransitionStatus applies a state-machine transition guarded on the expected
// current statuses. A matched id with an unmatched status means another
// writer transitioned the document first.
func (r *MongoSelectionRepo) TransitionStatus(id string, from []models.SelectionStatus, upd StatusUpdate) (*models.PlanSelection, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	if len(from) > 0 {
		filter["status"] = bson.M{"$in": from}
	}

	set := bson.M{
		"status":    upd.Status,
		"updatedAt": time.Now(),
	}
	if upd.SetRentStartDate != nil {
		set["rentStartDate"] = *upd.SetRentStartDate
	}
	if upd.SetRentPausedDate != nil {
		set["rentPausedDate"] = *upd.SetRentPausedDate
	}
	if upd.SetVehicleID != "" {
		set["vehicleId"] = upd.SetVehicleID
	}

	unset := bson.M{}
	if upd.ClearRentStartDate {
		unset["rentStartDate"] = ""
	}
	if upd.ClearRentPausedDate {
		unset["rentPausedDate"] = ""
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var sel models.PlanSelection
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&sel)
	if err == nil {
		return &sel, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to transition selection %s: %w", id, err)
	}

	// Distinguish a missing document from a lost race.
	count, countErr := r.coll.CountDocuments(ctx, bson.M{"id": id})
	if countErr != nil {
		return nil, fmt.Errorf("failed to transition selection %s: %w", id, countErr)
	}
	if count > 0 {
		return nil, ErrStatusConflict
	}
	return nil, nil
}

// MarkGatewayTransaction check-and-inserts a gateway transaction id. The
// unique index turns a redelivered webhook into a duplicate-key error, which
// reports as already-processed rather than failing.
func (r *MongoSelectionRepo) MarkGatewayTransaction(transactionID, selectionID string, amount float64) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	doc := bson.M{
		"transactionId": transactionID,
		"selectionId":   selectionID,
		"amount":        amount,
		"processedAt":   time.Now(),
	}
	if _, err := r.txnColl.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to record gateway transaction %s: %w", transactionID, err)
	}
	return true, nil
}
