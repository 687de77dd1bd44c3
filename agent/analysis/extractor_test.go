package analysis

import "testing"

func TestExtractEmail(t *testing.T) {
	t.Parallel()

	entities := ExtractEntities("Sure, send it to Orders.Team+sales@MedCare-Plus.com please")
	if entities.Email != "Orders.Team+sales@MedCare-Plus.com" {
		t.Fatalf("email = %q", entities.Email)
	}

	none := ExtractEntities("no address here")
	if none.Email != "" {
		t.Fatalf("email = %q, want empty", none.Email)
	}
}

func TestExtractPharmacyNamePriority(t *testing.T) {
	t.Parallel()

	// "calling from" outranks the bare pharmacy-substring pattern.
	entities := ExtractEntities("Hi, I'm calling from MedCare Plus, we're a pharmacy in Austin")
	if entities.PharmacyName != "MedCare Plus" {
		t.Fatalf("pharmacy name = %q", entities.PharmacyName)
	}

	atForm := ExtractEntities("I work at Riverside Pharmacy downtown")
	if atForm.PharmacyName != "Riverside Pharmacy" {
		t.Fatalf("pharmacy name = %q", atForm.PharmacyName)
	}
}

func TestExtractLocation(t *testing.T) {
	t.Parallel()

	entities := ExtractEntities("We're in Springfield, IL and growing fast")
	if entities.Location != "Springfield, IL" {
		t.Fatalf("location = %q", entities.Location)
	}

	located := ExtractEntities("We're located in downtown Austin")
	if located.Location != "downtown Austin" {
		t.Fatalf("location = %q", located.Location)
	}
}

func TestExtractRxVolume(t *testing.T) {
	t.Parallel()

	entities := ExtractEntities("We fill about 12,500 prescriptions monthly")
	if entities.RxVolume == nil || *entities.RxVolume != 12500 {
		t.Fatalf("rx volume = %v", entities.RxVolume)
	}

	keyword := ExtractEntities("our volume is around 8000 per month")
	if keyword.RxVolume == nil || *keyword.RxVolume != 8000 {
		t.Fatalf("rx volume = %v", keyword.RxVolume)
	}

	none := ExtractEntities("we have many prescriptions")
	if none.RxVolume != nil {
		t.Fatalf("rx volume = %v, want nil", none.RxVolume)
	}
}

func TestExtractTimePreferenceOrdering(t *testing.T) {
	t.Parallel()

	// "tomorrow afternoon" must win over the bare "tomorrow" literal.
	entities := ExtractEntities("Could someone call me back tomorrow afternoon?")
	if entities.PreferredTime != "tomorrow afternoon" {
		t.Fatalf("preferred time = %q", entities.PreferredTime)
	}

	bare := ExtractEntities("call me tomorrow please")
	if bare.PreferredTime != "tomorrow" {
		t.Fatalf("preferred time = %q", bare.PreferredTime)
	}
}

func TestExtractEmptyMessage(t *testing.T) {
	t.Parallel()

	entities := ExtractEntities("   ")
	if !entities.IsEmpty() {
		t.Fatalf("expected empty entities, got %+v", entities)
	}
}

func TestExtractMultipleEntitiesAtOnce(t *testing.T) {
	t.Parallel()

	msg := "Hi, this is MedCare Plus pharmacy, we fill 8,000 prescriptions a month. Can you email ops@medcare.com?"
	entities := ExtractEntities(msg)

	if entities.Email != "ops@medcare.com" {
		t.Fatalf("email = %q", entities.Email)
	}
	if entities.RxVolume == nil || *entities.RxVolume != 8000 {
		t.Fatalf("rx volume = %v", entities.RxVolume)
	}
	if entities.PharmacyName == "" {
		t.Fatal("expected pharmacy name")
	}
}
