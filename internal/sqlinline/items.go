package sqlinline

const QInsertDonationItem = `--sql 7c51a9d0-a01d-436a-a102-f5c9b0138cbe
insert into donation_items(id, donation_id, description, storage_location, photo_url)
values ($1::uuid, $2::uuid, $3::text, $4::text, nullif($5::text, ''))
returning id, donation_id, description, storage_location, photo_url, notification_sent, created_at;
`

const QUpdateDonationItem = `--sql 08fe786e-d584-4158-a936-933fcac87f16
update donation_items
set description = $2::text,
    storage_location = $3::text
where id = $1::uuid
returning id, donation_id, description, storage_location, photo_url, notification_sent, created_at;
`

const QDeleteDonationItem = `--sql 6bf945b0-1692-477c-a0bd-8bdcd573d764
delete from donation_items
where id = $1::uuid;
`

const QListInventory = `--sql aa5a0149-79b4-4db2-a873-255e515bd572
select it.id, it.description, it.storage_location, it.photo_url,
       it.notification_sent, it.created_at,
       dn.id, dn.date_accepted, dn.notes, dn.created_at,
       d.id, d.name, d.email, d.address, d.phone, d.created_at
from donation_items it
join donations dn on dn.id = it.donation_id
join donors d on d.id = dn.donor_id
order by it.created_at desc;
`

const QInventoryStats = `--sql 27f4d8de-cfd5-4567-8135-43c6ade3f9d2
select count(*),
       count(*) filter (where it.created_at >= $1::timestamptz),
       count(*) filter (where it.notification_sent is null
                          and d.email is not null
                          and dn.date_accepted <= $2::date)
from donation_items it
join donations dn on dn.id = it.donation_id
join donors d on d.id = dn.donor_id;
`
